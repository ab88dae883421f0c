package container

import (
	"bytes"
	"testing"
)

func TestContainer(t *testing.T) {
	c := New([]byte("ran"))
	c.Append([]byte("dom"))
	c.AppendString("ness")

	if c.Length() != 10 {
		t.Errorf("unexpected length: %d", c.Length())
	}
	if !bytes.Equal(c.CompileData(), []byte("randomness")) {
		t.Errorf("unexpected compiled data: %s", c.CompileData())
	}

	// compiling must not consume
	if c.Length() != 10 {
		t.Errorf("unexpected length after compile: %d", c.Length())
	}

	part, err := c.Get(6)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(part, []byte("random")) {
		t.Errorf("unexpected data: %s", part)
	}
	if !bytes.Equal(c.CompileData(), []byte("ness")) {
		t.Errorf("unexpected remaining data: %s", c.CompileData())
	}

	_, err = c.Get(100)
	if err == nil {
		t.Error("expected error when getting more data than available")
	}

	c = New()
	c.AppendInt(1)
	if c.Length() != 8 {
		t.Errorf("unexpected length: %d", c.Length())
	}
	if c.CompileData()[0] != 1 {
		t.Error("expected little endian encoding")
	}
}
