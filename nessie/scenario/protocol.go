package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/valerio/go-nessie/nessie/channel"
	"github.com/valerio/go-nessie/nessie/ppu"
)

func channelOrder(ctx context.Context) error {
	pair := channel.NewPair[ppu.Register](channel.DefaultDepth)
	req, resp := pair.Requester(), pair.Responder()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu      sync.Mutex
		applied []uint8
		wg      sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer resp.Close()
		for ctx.Err() == nil {
			resp.Service(func(cmd channel.Command[ppu.Register]) {
				mu.Lock()
				applied = append(applied, cmd.Value)
				mu.Unlock()
			}, func(ppu.Register) byte {
				mu.Lock()
				defer mu.Unlock()
				return byte(len(applied))
			})
		}
	}()

	want := []uint8{0x11, 0x22, 0x33}
	for _, v := range want {
		req.Write(ppu.Data, v)
	}

	// the reply counts the writes applied before the read was answered
	got := req.Read(ppu.Status)
	cancel()
	wg.Wait()

	if int(got) != len(want) {
		return fmt.Errorf("read answered after %d writes, want %d", got, len(want))
	}
	for i, v := range want {
		if applied[i] != v {
			return fmt.Errorf("write %d applied as 0x%02X, want 0x%02X", i, applied[i], v)
		}
	}
	return nil
}
