package container

import (
	"encoding/binary"
	"errors"
)

// Container is a []byte slice on steroids, allowing for quick appending and
// compiling of byte data without copying on every write.
type Container struct {
	compartments [][]byte
}

// New creates a new container with the given initial []byte slices. Data will NOT be copied.
func New(data ...[]byte) *Container {
	return &Container{
		compartments: data,
	}
}

// Append appends the given data. Data will NOT be copied.
func (c *Container) Append(data []byte) {
	c.compartments = append(c.compartments, data)
}

// AppendString appends the given string.
func (c *Container) AppendString(data string) {
	c.Append([]byte(data))
}

// AppendInt appends the given number, encoded as 8 little endian bytes.
func (c *Container) AppendInt(n int64) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	c.Append(b)
}

// Length returns the full length of all bytes held by the container.
func (c *Container) Length() (length int) {
	for _, compartment := range c.compartments {
		length += len(compartment)
	}
	return
}

// CompileData concatenates all bytes held by the container and returns it as
// one single []byte slice. Data is NOT consumed.
func (c *Container) CompileData() []byte {
	if len(c.compartments) != 1 {
		newBuf := make([]byte, c.Length())
		copyBuf := newBuf
		for _, compartment := range c.compartments {
			copy(copyBuf, compartment)
			copyBuf = copyBuf[len(compartment):]
		}
		c.compartments = [][]byte{newBuf}
	}
	return c.compartments[0]
}

// Get returns the given amount of bytes from the front of the container.
// Data IS consumed.
func (c *Container) Get(n int) ([]byte, error) {
	buf := c.CompileData()
	if len(buf) < n {
		return nil, errors.New("container: not enough data to return")
	}
	c.compartments = [][]byte{buf[n:]}
	return buf[:n], nil
}
