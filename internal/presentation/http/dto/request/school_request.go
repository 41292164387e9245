package request

// UpdateSchoolProfileRequest edits the receipt letterhead
type UpdateSchoolProfileRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Motto   *string `json:"motto" binding:"omitempty,max=255"`
}

// UpdateSettingsRequest edits the school's preferences
type UpdateSettingsRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=2,max=255"`
	Currency       *string `json:"currency" binding:"omitempty,len=3,alpha"`
	Timezone       *string `json:"timezone" binding:"omitempty,timezone"`
	DateFormat     *string `json:"date_format" binding:"omitempty,oneof='DD/MM/YYYY' 'YYYY-MM-DD' 'MM/DD/YYYY' 'DD MMM YYYY'"`
	ReceiptSize    *string `json:"receipt_size" binding:"omitempty,receipt_size"`
	SignatureLabel *string `json:"signature_label" binding:"omitempty,max=100"`
}
