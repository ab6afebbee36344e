package hotkey

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	gohook "github.com/robotn/gohook"
)

// Listen watches the global keyboard for combo (e.g. "Esc", "Ctrl+Alt+Q") and
// calls callback each time the whole combination is held. Unlike window key
// events this works even when the overlay never received focus. The returned
// stop function ends the hook; it is nil when combo has no usable keys.
func Listen(combo string, callback func()) (stop func()) {
	keys := parseHotkey(combo)
	log.Debug("parsed hotkey configuration", "keys", keys)

	type keyState struct {
		name     string
		keycodes []uint16
		pressed  bool
	}

	var keyStates []keyState
	for _, keyName := range keys {
		codes := keyNameToKeycodes(keyName)
		if len(codes) == 0 {
			log.Warn("cannot map key to keycode, hotkey may not work correctly", "key", keyName)
			continue
		}
		keyStates = append(keyStates, keyState{name: keyName, keycodes: codes})
	}
	if len(keyStates) == 0 {
		log.Warn("no valid keys in hotkey configuration", "hotkey", combo)
		return nil
	}

	evChan := gohook.Start()
	if evChan == nil {
		log.Error("gohook.Start returned nil channel")
		return nil
	}

	var mu sync.Mutex
	match := func(ev gohook.Event, pressed bool) (allPressed bool) {
		mu.Lock()
		defer mu.Unlock()
		for i := range keyStates {
			for _, code := range keyStates[i].keycodes {
				if ev.Keycode == code {
					keyStates[i].pressed = pressed
					break
				}
			}
		}
		if !pressed {
			return false
		}
		for i := range keyStates {
			if !keyStates[i].pressed {
				return false
			}
		}
		// Reset so a held combination fires once.
		for i := range keyStates {
			keyStates[i].pressed = false
		}
		return true
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in hotkey goroutine", "panic", r)
			}
		}()
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown, gohook.KeyHold:
				if match(ev, true) {
					log.Debug("hotkey combination detected", "hotkey", combo)
					if callback != nil {
						callback()
					}
				}
			case gohook.KeyUp:
				match(ev, false)
			}
		}
		log.Debug("hotkey event channel closed")
	}()

	var once sync.Once
	return func() { once.Do(gohook.End) }
}

// parseHotkey converts a hotkey string like "Ctrl+Alt+q" to normalized key names
func parseHotkey(hotkeyConfig string) []string {
	if strings.TrimSpace(hotkeyConfig) == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(hotkeyConfig), "+")
	var keys []string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "ctrl", "control":
			keys = append(keys, "ctrl")
		case "alt", "option":
			keys = append(keys, "alt")
		case "shift":
			keys = append(keys, "shift")
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		case "esc", "escape":
			keys = append(keys, "esc")
		case "return":
			keys = append(keys, "enter")
		default:
			keys = append(keys, part)
		}
	}

	return keys
}

// modifierVariants lists left and right names for each modifier.
var modifierVariants = map[string][]string{
	"ctrl":  {"ctrl", "rctrl"},
	"alt":   {"alt", "ralt"},
	"shift": {"shift", "rshift"},
	"cmd":   {"cmd", "rcmd"},
}

// keyNameToKeycodes maps a normalized key name to gohook keycodes, returning
// both sides for modifiers.
func keyNameToKeycodes(keyName string) []uint16 {
	names, ok := modifierVariants[keyName]
	if !ok {
		names = []string{keyName}
	}

	var codes []uint16
	for _, n := range names {
		if code, ok := gohook.Keycode[n]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}
