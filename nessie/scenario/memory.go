package scenario

import (
	"context"
	"fmt"

	"github.com/valerio/go-nessie/nessie/memory"
	"github.com/valerio/go-nessie/nessie/rom"
)

const uxromBanks = 4

// bankedImage returns a UxROM image whose banks are filled with their own index.
func bankedImage() (*rom.Image, error) {
	prg := make([]byte, uxromBanks*rom.PRGBankSize)
	for i := range prg {
		prg[i] = byte(i / rom.PRGBankSize)
	}
	return rom.Parse(rom.Build(prg, make([]byte, rom.CHRBankSize), 2, rom.Vertical))
}

func mapperBank(context.Context) error {
	img, err := bankedImage()
	if err != nil {
		return err
	}
	cart, err := memory.NewCartridge(img)
	if err != nil {
		return err
	}

	checks := []struct {
		selectValue uint8
		wantBank    uint8
	}{
		{2, 2},
		{1, 1},
		{uxromBanks + 3, 3}, // wraps modulo the bank count
		{0xFE, 0xFE % uxromBanks},
	}

	for _, c := range checks {
		cart.Write(0x8000, c.selectValue)
		for _, address := range []uint16{0x8000, 0x9234, 0xBFFF} {
			if got := cart.Read(address); got != c.wantBank {
				return fmt.Errorf("select %d: read 0x%04X from bank %d, want bank %d", c.selectValue, address, got, c.wantBank)
			}
		}
		if got := cart.Read(0xC000); got != uxromBanks-1 {
			return fmt.Errorf("select %d: fixed bank at 0xC000 reads bank %d", c.selectValue, got)
		}
	}
	return nil
}

func nromIdentity(context.Context) error {
	prg := make([]byte, rom.PRGBankSize)
	for i := range prg {
		prg[i] = byte(i*7 + i>>8)
	}
	chr := make([]byte, rom.CHRBankSize)

	data := rom.Build(prg, chr, 0, rom.Horizontal)
	if want := rom.HeaderSize + len(prg) + len(chr); len(data) != want {
		return fmt.Errorf("image is %d bytes, want %d", len(data), want)
	}

	img, err := rom.Parse(data)
	if err != nil {
		return err
	}
	cart, err := memory.NewCartridge(img)
	if err != nil {
		return err
	}
	bus := memory.NewBus(cart, nil, nil)

	for i, want := range prg {
		lo := uint16(0x8000 + i)
		if got := bus.Read(lo); got != want {
			return fmt.Errorf("0x%04X reads 0x%02X, want 0x%02X", lo, got, want)
		}
		// 16KB images mirror into the upper half
		hi := uint16(0xC000 + i)
		if got := bus.Read(hi); got != want {
			return fmt.Errorf("0x%04X reads 0x%02X, want 0x%02X", hi, got, want)
		}
	}
	return nil
}
