package main

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/walteh/reserialize/pkg/log"
)

// 📊 progressBar renders patch progress with pterm, starting the bar on the first update
type progressBar struct {
	out    io.Writer
	logger *log.Logger
	bar    *pterm.ProgressbarPrinter
}

func newProgressBar(out io.Writer, logger *log.Logger) *progressBar {
	return &progressBar{out: out, logger: logger}
}

// Update is a serialized.ProgressFunc
func (p *progressBar) Update(current, total int) {
	p.logger.Progress(current, total)

	if p.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("Reserializing").
			WithWriter(p.out).
			Start()
		if err != nil {
			return
		}
		p.bar = bar
	}

	p.bar.Increment()

	if current >= total {
		p.Stop()
	}
}

// Stop ends a bar that is still running
func (p *progressBar) Stop() {
	if p.bar == nil {
		return
	}
	_, _ = p.bar.Stop()
	p.bar = nil
}
