//go:build windows

package main

import (
	"github.com/charmbracelet/log"
	"golang.org/x/sys/windows"
)

// enableDPIAwareness sets per-monitor DPI awareness so window positions and
// captured pixels share one coordinate space.
func enableDPIAwareness() {
	shcore := windows.NewLazySystemDLL("Shcore.dll")
	setProcessDpiAwareness := shcore.NewProc("SetProcessDpiAwareness")
	const processPerMonitorDPIAware = 2
	if err := setProcessDpiAwareness.Find(); err == nil {
		ret, _, _ := setProcessDpiAwareness.Call(uintptr(processPerMonitorDPIAware))
		if ret == 0 {
			log.Debug("DPI: set per-monitor DPI awareness")
		} else {
			log.Debug("DPI: failed to set per-monitor DPI awareness", "hresult", ret)
		}
		return
	}

	user32 := windows.NewLazySystemDLL("user32.dll")
	setProcessDPIAware := user32.NewProc("SetProcessDPIAware")
	if err := setProcessDPIAware.Find(); err != nil {
		log.Debug("DPI: SetProcessDPIAware not available, no DPI awareness set")
		return
	}
	if ret, _, _ := setProcessDPIAware.Call(); ret == 0 {
		log.Debug("DPI: failed to set system DPI awareness (fallback)")
	}
}
