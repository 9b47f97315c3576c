package driver

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/escbadge/minibadge/internal/matrix"
)

// bitRate is the NRZ bit clock: 800 kHz symbol rate expanded 3x on the
// SPI wire, padded the way the strip tolerates.
const bitRate = ((800 * 3) + 100) * physic.KiloHertz

// NRZ drives the badge's WS2812-style matrix through an SPI port.
type NRZ struct {
	mu   sync.Mutex
	port spi.PortCloser
	dev  *nrzled.Dev
	buf  [matrix.Size * 3]byte
}

// NewNRZ initializes the host, opens the SPI port (empty name picks the
// first one) and prepares the pixel encoder.
func NewNRZ(portName string) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi: %w", err)
	}
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: matrix.Size,
		Channels:  3,
		Freq:      bitRate,
	})
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &NRZ{port: port, dev: dev}, nil
}

// Write serializes the frame and pushes it out. The SPI transfer is
// synchronous, so returning doubles as the transmission-complete wait.
func (n *NRZ) Write(f *matrix.Frame) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, p := range f {
		n.buf[i*3+0] = p.R
		n.buf[i*3+1] = p.G
		n.buf[i*3+2] = p.B
	}
	if _, err := n.dev.Write(n.buf[:]); err != nil {
		return fmt.Errorf("nrz write: %w", err)
	}
	return nil
}

func (n *NRZ) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_ = n.dev.Halt()
	return n.port.Close()
}
