package host

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"clikit/internal/core"
	"clikit/internal/executor"
)

// Report сведения об окружении для `clikit doctor`.
type Report struct {
	Hostname    string  `json:"hostname"`
	Platform    string  `json:"platform"`
	PlatformVer string  `json:"platformVer"`
	Kernel      string  `json:"kernel"`
	UptimeSec   uint64  `json:"uptime_sec"`
	BootTime    string  `json:"boot_time"`
	MemTotal    uint64  `json:"mem_total"`
	MemUsed     uint64  `json:"mem_used"`
	MemUsedPct  float64 `json:"mem_used_pct"`
	Load1       float64 `json:"load1"`
	Load5       float64 `json:"load5"`
	Load15      float64 `json:"load15"`
	Toolchain   string  `json:"toolchain,omitempty"`
}

// Probes источники данных; nil-поле заменяется значением из gopsutil.
type Probes struct {
	Info      func(ctx context.Context) (*host.InfoStat, error)
	Memory    func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Load      func(ctx context.Context) (*load.AvgStat, error)
	Toolchain *executor.SubprocessConfig
}

// DefaultToolchain команда, которой проверяется наличие Go.
var DefaultToolchain = executor.SubprocessConfig{Command: "go", Args: []string{"version"}}

func (p Probes) withDefaults() Probes {
	if p.Info == nil {
		p.Info = host.InfoWithContext
	}
	if p.Memory == nil {
		p.Memory = mem.VirtualMemoryWithContext
	}
	if p.Load == nil {
		p.Load = load.AvgWithContext
	}
	return p
}

// Doctor собирает отчет фазами. Отсутствие тулчейна не ошибка: оно
// отмечается предупреждением.
func Doctor(ctx context.Context, cc *core.CommandContext, probes Probes) (Report, error) {
	p := probes.withDefaults()
	phases := []executor.Phase[Report]{
		{Name: "Host", Execute: func(ctx context.Context, r Report) (Report, error) {
			info, err := p.Info(ctx)
			if err != nil {
				return r, core.Wrap(core.CodeOperation, "Failed to read host info", err)
			}
			r.Hostname = info.Hostname
			r.Platform = info.Platform
			r.PlatformVer = info.PlatformVersion
			r.Kernel = info.KernelVersion
			r.UptimeSec = info.Uptime
			r.BootTime = time.Unix(int64(info.BootTime), 0).UTC().Format(time.RFC3339)
			return r, nil
		}},
		{Name: "Memory", Execute: func(ctx context.Context, r Report) (Report, error) {
			vm, err := p.Memory(ctx)
			if err != nil {
				return r, core.Wrap(core.CodeOperation, "Failed to read memory info", err)
			}
			r.MemTotal = vm.Total
			r.MemUsed = vm.Used
			r.MemUsedPct = vm.UsedPercent
			return r, nil
		}},
		{Name: "Load", Execute: func(ctx context.Context, r Report) (Report, error) {
			ld, err := p.Load(ctx)
			if err != nil {
				return r, core.Wrap(core.CodeOperation, "Failed to read load average", err)
			}
			r.Load1, r.Load5, r.Load15 = ld.Load1, ld.Load5, ld.Load15
			return r, nil
		}},
	}
	if p.Toolchain != nil {
		cfg := *p.Toolchain
		phases = append(phases, executor.Phase[Report]{Name: "Toolchain", Execute: func(ctx context.Context, r Report) (Report, error) {
			quiet := *cc
			quiet.Verbose = false
			out, err := executor.RunSubprocess(ctx, &quiet, cfg)
			if err != nil {
				cc.Logger.Warning(fmt.Sprintf("%s is not available", cfg.Command), "err", core.MessageOf(err))
				return r, nil
			}
			r.Toolchain = strings.TrimSpace(out)
			return r, nil
		}})
	}

	report, err := executor.RunPhases(ctx, cc, phases, Report{})
	if err != nil {
		return Report{}, err
	}
	cc.Logger.Success("Environment looks good")
	return report, nil
}
