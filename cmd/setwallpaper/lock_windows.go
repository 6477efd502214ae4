//go:build windows

package main

import (
	"errors"

	"github.com/dixieflatline76/setwallpaper/config"
	"github.com/dixieflatline76/setwallpaper/util/log"
	"golang.org/x/sys/windows"
)

var mutex windows.Handle

// acquireLock takes the single-instance named mutex. false means another instance holds it.
func acquireLock() (bool, error) {
	namePtr, err := windows.UTF16PtrFromString(config.AppName + "_SingleInstanceMutex")
	if err != nil {
		return false, err
	}

	h, err := windows.CreateMutex(nil, false, namePtr)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}
	mutex = h
	return true, nil
}

func releaseLock() {
	if mutex == 0 {
		return
	}
	if err := windows.CloseHandle(mutex); err != nil {
		log.Printf("Failed to close mutex handle: %v", err)
	}
	mutex = 0
}
