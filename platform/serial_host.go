//go:build !(rp2040 || rp2350)

package platform

import (
	"github.com/tarm/serial"

	"deviceconsole-go/errcode"
)

// SerialDevice is a host console endpoint on a real serial port, for running
// the application against an attached terminal.
type SerialDevice struct {
	port *serial.Port
}

func OpenSerialDevice(device string, baud int) (*SerialDevice, error) {
	if device == "" {
		return nil, &errcode.E{C: errcode.InvalidInput, Op: "platform.OpenSerialDevice", Msg: "empty device path"}
	}
	if baud <= 0 {
		baud = 115200
	}
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, &errcode.E{C: errcode.Error, Op: "platform.OpenSerialDevice", Msg: device, Err: err}
	}
	return &SerialDevice{port: port}, nil
}

func (d *SerialDevice) WriteString(s string) error {
	_, err := d.port.Write([]byte(s))
	return err
}

// ReadByte blocks until one byte arrives. The port is opened without a read
// timeout, but a zero-length read is retried rather than treated as EOF.
func (d *SerialDevice) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := d.port.Read(buf[:])
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return buf[0], nil
		}
	}
}

func (d *SerialDevice) Close() error { return d.port.Close() }
