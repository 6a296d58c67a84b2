/*
Copyright © 2025 restic-exporter authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"
)

// notifyReady signals readiness to systemd when running under a unit with
// Type=notify. Outside systemd the call is a no-op.
func notifyReady() {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		slog.Warn("systemd ready notification failed", "error", err)
		return
	}
	if sent {
		slog.Debug("notified systemd readiness")
	}
}

// notifyStopping signals shutdown to systemd.
func notifyStopping() {
	if _, err := daemon.SdNotify(false, daemon.SdNotifyStopping); err != nil {
		slog.Warn("systemd stopping notification failed", "error", err)
	}
}
