// Command fastpairseeker wires a PairerBroker against a platform GATT and
// classic-pairing adapter and logs the resulting events. It is a sample
// wiring, not a complete platform integration: the GattClient and
// ClassicPairing implementations here are stand-ins for a real BLE stack.
package main

import (
	"log"
	"os"

	fastpair "github.com/fastpair-go/seeker"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetOutput(os.Stdout)
	cfg := fastpair.DefaultConfig()

	mediums := noopGattClient{}
	classic := noopClassicPairing{}
	repo := noopRepository{}

	broker := fastpair.NewPairerBroker(cfg, mediums, classic, repo, true)
	defer broker.Shutdown()

	events := make(chan any, 16)
	broker.Observe(events)
	defer broker.StopObserving(events)

	scanner := fastpair.NewScanner(func(ev fastpair.ScanEvent) {
		if ev.Lost {
			log.Printf("device lost: %s", ev.Device.ModelID())
			return
		}
		log.Printf("device found: %s at %s", ev.Device.ModelID(), ev.Device.BleAddress())
		broker.StartPairing(ev.Device)
	})

	go func() {
		for raw := range events {
			ev, ok := raw.(fastpair.BrokerEvent)
			if !ok {
				continue
			}
			switch {
			case ev.PairingComplete:
				log.Printf("paired: %s", ev.ModelID)
			case ev.PairFailure != nil:
				log.Printf("pair failed: %s: %s", ev.ModelID, ev.PairFailure)
			case ev.AccountKeyFailure != nil:
				log.Printf("account key write failed: %s: %s", ev.ModelID, ev.AccountKeyFailure)
			case ev.AccountKeyWriteOK:
				log.Printf("account key written: %s", ev.ModelID)
			}
		}
	}()

	// A real integration feeds scanner.OnAdvertisementFound /
	// OnAdvertisementLost from platform BLE scan callbacks.
	_ = scanner
	select {}
}
