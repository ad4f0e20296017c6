// Package ui provides the system tray UI for the DNS switcher.
package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/systray"

	"github.com/user/dns-switcher/internal/core"
	"github.com/user/dns-switcher/internal/dns"
	"github.com/user/dns-switcher/internal/logger"
	"github.com/user/dns-switcher/internal/probe"
)

// maxServerItems is the number of menu rows reserved for nameservers.
const maxServerItems = 4

var (
	service *core.Service
	prober  = probe.New(probe.WithTimeout(2 * time.Second))

	uiMu    sync.Mutex
	lastSeq uint64

	// Systray menu items
	mStatus    *systray.MenuItem
	mServers   [maxServerItems]*systray.MenuItem
	mProviders = make(map[dns.ProviderID]*systray.MenuItem)
	mCustom    *systray.MenuItem
	mClear     *systray.MenuItem
	mRefresh   *systray.MenuItem
	mProbe     *systray.MenuItem
	mConfig    *systray.MenuItem
	mLogs      *systray.MenuItem
	mQuit      *systray.MenuItem
)

// Run starts the tray application. It blocks until the user quits.
func Run(svc *core.Service, cfgPath string) {
	service = svc
	configPath = cfgPath
	systray.Run(onReady, onExit)
}

// onReady is called when systray is ready
func onReady() {
	systray.SetIcon(GetIcon(core.StatusLoading))
	systray.SetTitle("DNS")
	systray.SetTooltip("DNS Switcher")

	mStatus = systray.AddMenuItem("Loading...", "")
	mStatus.Disable()
	for i := range mServers {
		mServers[i] = systray.AddMenuItem("", "")
		mServers[i].Disable()
		mServers[i].Hide()
	}

	systray.AddSeparator()

	for _, p := range service.Providers() {
		p := p
		item := systray.AddMenuItemCheckbox(p.Name, strings.Join(p.Servers, ", "), false)
		mProviders[p.ID] = item
		watchClicks(item, "provider-"+string(p.ID), func() { doSwitch(core.ProviderTarget(p.ID)) })
	}
	custom := service.Custom()
	mCustom = systray.AddMenuItemCheckbox(custom.Name, strings.Join(custom.Servers, ", "), false)
	watchClicks(mCustom, "custom", func() { doSwitch(core.CustomTarget()) })

	systray.AddSeparator()

	mClear = systray.AddMenuItem("Automatic (DHCP)", "Remove manual DNS servers")
	mRefresh = systray.AddMenuItem("Refresh", "")
	mProbe = systray.AddMenuItem("Check servers", "Send a test query to each active server")

	systray.AddSeparator()

	mConfig = systray.AddMenuItem("Edit config...", "")
	mLogs = systray.AddMenuItem("Open log", "")
	mQuit = systray.AddMenuItem("Quit", "")

	service.SetStatusListener(updateUI)
	logger.AddListener(onLogLine)

	logger.SafeGo("systray-menu-loop", func() {
		for {
			select {
			case <-mClear.ClickedCh:
				logger.SafeGo("doClear", doClear)
			case <-mRefresh.ClickedCh:
				logger.SafeGo("doRefresh", service.Refresh)
			case <-mProbe.ClickedCh:
				logger.SafeGo("doProbe", doProbe)
			case <-mConfig.ClickedCh:
				logger.SafeGo("ShowSettingsWindow", ShowSettingsWindow)
			case <-mLogs.ClickedCh:
				logger.SafeGo("openLogFile", openLogFile)
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	})

	service.Start()
}

// onExit is called when systray exits
func onExit() {
	logger.Info("DNS Switcher shutting down")
	if service != nil {
		service.Stop()
	}
	logger.Close()
}

func watchClicks(item *systray.MenuItem, name string, fn func()) {
	logger.SafeGo("systray-"+name, func() {
		for range item.ClickedCh {
			logger.SafeGo(name, fn)
		}
	})
}

func doSwitch(target core.Target) {
	logger.Info("User selected %s", target)

	if err := service.SwitchTo(target); err != nil {
		showError(fmt.Sprintf("Failed to switch DNS: %v", err))
	}
}

func doClear() {
	logger.Info("User restored automatic DNS")
	service.Clear()
}

func doProbe() {
	snap := service.Snapshot()
	if snap.Status != core.StatusSuccess || len(snap.Servers) == 0 {
		return
	}

	mProbe.Disable()
	defer mProbe.Enable()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := prober.Probe(ctx, snap.Servers)
	if err != nil {
		logger.Warning("Probe: %v", err)
	}

	uiMu.Lock()
	defer uiMu.Unlock()
	if snap.Seq != lastSeq {
		return
	}
	for i, r := range results {
		if i >= maxServerItems {
			break
		}
		mServers[i].SetTitle(probeTitle(i, r))
		if r.Err != nil {
			logger.Warning("Server %s: %v", r.Server, r.Err)
		}
	}
}

func updateUI(snap core.Snapshot) {
	defer logger.Recover("updateUI")

	uiMu.Lock()
	defer uiMu.Unlock()

	if !acceptLocked(snap) {
		return
	}

	systray.SetIcon(GetIcon(snap.Status))
	mStatus.SetTitle(statusTitle(snap))
	systray.SetTooltip(tooltip(snap))

	for i, item := range mServers {
		switch {
		case i < len(snap.Servers) && (i < maxServerItems-1 || len(snap.Servers) == maxServerItems):
			item.SetTitle(serverTitle(i, snap.Servers[i]))
			item.Show()
		case i == maxServerItems-1 && len(snap.Servers) > maxServerItems:
			item.SetTitle(fmt.Sprintf("... %d more", len(snap.Servers)-i))
			item.Show()
		default:
			item.Hide()
		}
	}

	for id, item := range mProviders {
		setChecked(item, snap.Classification == dns.KnownProvider(id))
	}
	setChecked(mCustom, snap.Classification.Kind == dns.KindCustom)

	switch snap.Status {
	case core.StatusSuccess:
		systray.SetTitle(snap.Label)
		setEnabled(true, true)
	case core.StatusError:
		systray.SetTitle("DNS !")
		setEnabled(true, false)
	default:
		systray.SetTitle("DNS ...")
		setEnabled(false, false)
	}
}

// acceptLocked reports whether snap is newer than everything rendered so
// far. Listener calls can arrive out of order.
func acceptLocked(snap core.Snapshot) bool {
	if snap.Seq <= lastSeq {
		return false
	}
	lastSeq = snap.Seq
	return true
}

// onLogLine shows the latest error on the "Open log" item.
func onLogLine(line string) {
	msg, ok := errorMessage(line)
	if !ok {
		return
	}

	uiMu.Lock()
	defer uiMu.Unlock()
	if mLogs != nil {
		mLogs.SetTooltip("Last error: " + msg)
	}
}

// setEnabled toggles the action items; switching is allowed only after a
// successful read.
func setEnabled(actions, switching bool) {
	for _, item := range []*systray.MenuItem{mClear, mRefresh} {
		enable(item, actions)
	}
	enable(mProbe, switching)
	for _, item := range mProviders {
		enable(item, switching)
	}
	enable(mCustom, switching)
}

func enable(item *systray.MenuItem, on bool) {
	if on {
		item.Enable()
	} else {
		item.Disable()
	}
}

func setChecked(item *systray.MenuItem, on bool) {
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func showError(message string) {
	logger.Error("%s", message)
	mStatus.SetTitle(message)
}
