package nrom

import "testing"

func header(prgPages, chrPages, control6, control7 uint8) []byte {
	h := make([]byte, headerSize)
	copy(h, magic[:])
	h[4] = prgPages
	h[5] = chrPages
	h[6] = control6
	h[7] = control7
	return h
}

func TestLoadRejectsShortFile(t *testing.T) {
	_, err := Load([]byte{0x4E, 0x45, 0x53})
	if _, ok := err.(BadHeader); !ok {
		t.Fatalf("Load() err = %v, want BadHeader", err)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	raw := header(1, 1, 0, 0)
	raw[0] = 'X'
	raw = append(raw, make([]byte, prgPageSize+chrPageSize)...)
	_, err := Load(raw)
	if _, ok := err.(BadHeader); !ok {
		t.Fatalf("Load() err = %v, want BadHeader", err)
	}
}

func TestLoadRejectsNonZeroMapper(t *testing.T) {
	raw := header(1, 1, 0x10, 0x00) // mapper low nibble 1
	raw = append(raw, make([]byte, prgPageSize+chrPageSize)...)
	_, err := Load(raw)
	um, ok := err.(UnsupportedMapper)
	if !ok {
		t.Fatalf("Load() err = %v, want UnsupportedMapper", err)
	}
	if um.Mapper != 1 {
		t.Errorf("Mapper = %d, want 1", um.Mapper)
	}
}

func Test16KiBPRGMirrorsAcrossBothHalves(t *testing.T) {
	raw := header(1, 1, 0, 0)
	prg := make([]byte, prgPageSize)
	prg[0] = 0xA9
	prg[prgPageSize-1] = 0x42
	raw = append(raw, prg...)
	raw = append(raw, make([]byte, chrPageSize)...)

	cart, err := Load(raw)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got := cart.CPURead(0x8000); got != 0xA9 {
		t.Errorf("CPURead(0x8000) = %02X, want A9", got)
	}
	if got := cart.CPURead(0xBFFF); got != 0x42 {
		t.Errorf("CPURead(0xBFFF) = %02X, want 42", got)
	}
	// mirrored into the upper half
	if got := cart.CPURead(0xC000); got != 0xA9 {
		t.Errorf("CPURead(0xC000) = %02X, want A9 (mirrored)", got)
	}
	if got := cart.CPURead(0xFFFF); got != 0x42 {
		t.Errorf("CPURead(0xFFFF) = %02X, want 42 (mirrored)", got)
	}
}

func Test32KiBPRGIsFlatNotMirrored(t *testing.T) {
	raw := header(2, 1, 0, 0)
	prg := make([]byte, 2*prgPageSize)
	prg[0] = 0x01
	prg[prgPageSize] = 0x02
	raw = append(raw, prg...)
	raw = append(raw, make([]byte, chrPageSize)...)

	cart, err := Load(raw)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got := cart.CPURead(0x8000); got != 0x01 {
		t.Errorf("CPURead(0x8000) = %02X, want 01", got)
	}
	if got := cart.CPURead(0xC000); got != 0x02 {
		t.Errorf("CPURead(0xC000) = %02X, want 02", got)
	}
}

func TestCPUReadBelowPRGWindowIsZero(t *testing.T) {
	raw := header(1, 1, 0, 0)
	raw = append(raw, make([]byte, prgPageSize+chrPageSize)...)
	cart, err := Load(raw)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got := cart.CPURead(0x6000); got != 0 {
		t.Errorf("CPURead(0x6000) = %02X, want 00", got)
	}
}

func TestCPUWriteIsNoOp(t *testing.T) {
	raw := header(1, 1, 0, 0)
	raw = append(raw, make([]byte, prgPageSize+chrPageSize)...)
	cart, err := Load(raw)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	cart.CPUWrite(0x8000, 0xFF)
	if got := cart.CPURead(0x8000); got != 0 {
		t.Errorf("CPURead(0x8000) after write = %02X, want unchanged 00", got)
	}
}

func TestMirroringBits(t *testing.T) {
	tests := []struct {
		name     string
		control6 uint8
		want     Mirroring
	}{
		{"horizontal", 0x00, Horizontal},
		{"vertical", 0x01, Vertical},
		{"four screen", 0x08, FourScreen},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := header(1, 1, tc.control6, 0)
			raw = append(raw, make([]byte, prgPageSize+chrPageSize)...)
			cart, err := Load(raw)
			if err != nil {
				t.Fatalf("Load() err = %v", err)
			}
			if cart.Mirroring != tc.want {
				t.Errorf("Mirroring = %v, want %v", cart.Mirroring, tc.want)
			}
		})
	}
}

func TestTrainerIsSkipped(t *testing.T) {
	raw := header(1, 1, 0x04, 0) // trainer bit set
	raw = append(raw, make([]byte, trainerSize)...)
	prg := make([]byte, prgPageSize)
	prg[0] = 0x55
	raw = append(raw, prg...)
	raw = append(raw, make([]byte, chrPageSize)...)

	cart, err := Load(raw)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got := cart.CPURead(0x8000); got != 0x55 {
		t.Errorf("CPURead(0x8000) = %02X, want 55 (trainer skipped)", got)
	}
}
