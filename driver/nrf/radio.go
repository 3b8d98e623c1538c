//go:build tinygo || baremetal

package nrf

import (
	"machine"
	"runtime/interrupt"
	"unsafe"

	"device/nrf"
)

const (
	// SymbolPin is the MOSI pin wired to the modulator input.
	SymbolPin = machine.P0_02

	// DefaultSPIFrequency is the bit clock the symbol patterns are shifted at.
	DefaultSPIFrequency = nrf.SPI_FREQUENCY_FREQUENCY_M8

	// TIMER1 runs at 1 MHz and clears every 100 counts, giving the 10 kHz
	// tick that TIMER2 counts.
	tickPrescaler = 4
	tickDivider   = 100

	captureChannel  = 0
	overflowChannel = 1
)

// ConfigureSPI sets up the legacy SPI0 master with only MOSI connected,
// mode 0, MSB first.
func ConfigureSPI(mosi machine.Pin, frequency uint32) {
	nrf.SPI0.ENABLE.Set(nrf.SPI_ENABLE_ENABLE_Disabled)

	mosi.Configure(machine.PinConfig{Mode: machine.PinOutput})
	nrf.SPI0.PSEL.MOSI.Set(uint32(mosi))
	nrf.SPI0.PSEL.SCK.Set(0xFFFFFFFF)
	nrf.SPI0.PSEL.MISO.Set(0xFFFFFFFF)

	nrf.SPI0.FREQUENCY.Set(frequency)
	nrf.SPI0.CONFIG.Set(
		(nrf.SPI_CONFIG_ORDER_MsbFirst << nrf.SPI_CONFIG_ORDER_Pos) |
			(nrf.SPI_CONFIG_CPHA_Leading << nrf.SPI_CONFIG_CPHA_Pos) |
			(nrf.SPI_CONFIG_CPOL_ActiveHigh << nrf.SPI_CONFIG_CPOL_Pos))

	nrf.SPI0.EVENTS_READY.Set(0)
	nrf.SPI0.ENABLE.Set(nrf.SPI_ENABLE_ENABLE_Enabled)
}

// ConfigureTicks starts the 16-bit 10 kHz tick counter on TIMER2, clocked by
// TIMER1 through PPI channel 0, and enables the overflow interrupt.
func ConfigureTicks() interrupt.Interrupt {
	nrf.TIMER1.TASKS_STOP.Set(1)
	nrf.TIMER1.MODE.Set(nrf.TIMER_MODE_MODE_Timer)
	nrf.TIMER1.BITMODE.Set(nrf.TIMER_BITMODE_BITMODE_16Bit)
	nrf.TIMER1.PRESCALER.Set(tickPrescaler)
	nrf.TIMER1.CC[0].Set(tickDivider)
	nrf.TIMER1.SHORTS.Set(nrf.TIMER_SHORTS_COMPARE0_CLEAR_Enabled << nrf.TIMER_SHORTS_COMPARE0_CLEAR_Pos)

	nrf.TIMER2.TASKS_STOP.Set(1)
	nrf.TIMER2.MODE.Set(nrf.TIMER_MODE_MODE_LowPowerCounter)
	nrf.TIMER2.BITMODE.Set(nrf.TIMER_BITMODE_BITMODE_16Bit)
	nrf.TIMER2.TASKS_CLEAR.Set(1)
	// compare on 0 fires once per wrap
	nrf.TIMER2.CC[overflowChannel].Set(0)
	nrf.TIMER2.EVENTS_COMPARE[overflowChannel].Set(0)
	nrf.TIMER2.INTENSET.Set(nrf.TIMER_INTENSET_COMPARE1_Set << nrf.TIMER_INTENSET_COMPARE1_Pos)

	nrf.PPI.CH[0].EEP.Set(uint32(uintptr(unsafe.Pointer(&nrf.TIMER1.EVENTS_COMPARE[0]))))
	nrf.PPI.CH[0].TEP.Set(uint32(uintptr(unsafe.Pointer(&nrf.TIMER2.TASKS_COUNT))))
	nrf.PPI.CHENSET.Set(1 << 0)

	irq := interrupt.New(nrf.IRQ_TIMER2, func(interrupt.Interrupt) {
		if nrf.TIMER2.EVENTS_COMPARE[overflowChannel].Get() != 0 {
			nrf.TIMER2.EVENTS_COMPARE[overflowChannel].Set(0)
			if overflowHandler != nil {
				overflowHandler()
			}
		}
	})
	irq.SetPriority(0)
	irq.Enable()

	nrf.TIMER2.TASKS_START.Set(1)
	nrf.TIMER1.TASKS_START.Set(1)
	return irq
}
