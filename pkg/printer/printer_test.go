package printer

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentKeyValue(t *testing.T) {
	d := NewDocument(20)
	d.KeyValue("Paid", "KES 1,500")

	out := string(d.Bytes()[2:])
	assert.Equal(t, "Paid       KES 1,500\n", out)
}

func TestDocumentRowTruncatesAndAligns(t *testing.T) {
	d := NewDocument(32)
	cols := []Column{{Width: 10, Align: AlignLeft}, {Width: 8, Align: AlignRight}}
	d.Row(cols, "Wanjiku Kamau Njeri", "1,000")

	out := string(d.Bytes()[2:])
	assert.Equal(t, "Wanjiku Ka    1,000\n", out)
}

func TestDocumentWrapped(t *testing.T) {
	d := NewDocument(12)
	d.Wrapped("One Thousand Two Hundred Shillings")

	lines := strings.Split(strings.TrimSuffix(string(d.Bytes()[2:]), "\n"), "\n")
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 12)
	}
	assert.Equal(t, "One Thousand", lines[0])
}

func TestDocumentInitAndCut(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, 32, d.Width())
	d.Cut()
	b := d.Bytes()
	assert.True(t, bytes.HasPrefix(b, []byte{ESC, '@'}))
	assert.True(t, bytes.HasSuffix(b, []byte{GS, 'V', 0x00}))
}

func TestNew(t *testing.T) {
	p, err := New("none", "", "")
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())
	assert.False(t, p.IsConnected(context.Background()))

	_, err = New("usb", "", "")
	assert.Error(t, err)
	_, err = New("network", "", "")
	assert.Error(t, err)
	_, err = New("bluetooth", "", "")
	assert.Error(t, err)
}

func TestUSBPrinterWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewUSBPrinter(path)
	assert.True(t, p.IsConnected(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("hello")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestNetworkPrinterSendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		received <- buf.Bytes()
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print(context.Background(), []byte{ESC, '@', 'x'}))
	assert.Equal(t, []byte{ESC, '@', 'x'}, <-received)
}
