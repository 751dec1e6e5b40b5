// Package ping issues single ICMP echo requests and classifies the
// outcome for per-iteration reporting.
package ping

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// Failure taxonomy. Resolution and timeout failures are recoverable
// per iteration; permission failures are fatal at startup.
var (
	ErrResolution = errors.New("cannot resolve host")
	ErrTimeout    = errors.New("request timed out")
	ErrPermission = errors.New("icmp socket permission denied")
)

// DefaultTimeout bounds a single echo request, matching the classic
// `ping -W 2` wait
const DefaultTimeout = 2 * time.Second

// Result is the outcome of one echo request. Err is nil on success.
type Result struct {
	RTT time.Duration
	TTL int
	Err error
}

// OK reports whether a reply arrived
func (r Result) OK() bool {
	return r.Err == nil
}

// Prober sends one echo request per Probe call
type Prober struct {
	Timeout    time.Duration
	Privileged bool // raw ICMP socket instead of unprivileged UDP
}

// NewProber creates a prober with the default timeout
func NewProber() *Prober {
	return &Prober{Timeout: DefaultTimeout}
}

// Resolve returns the IP the host resolves to, for display purposes
func Resolve(host string) (string, error) {
	addr, err := net.ResolveIPAddr("ip", host)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrResolution, host)
	}
	return addr.IP.String(), nil
}

// Probe sends a single echo request to host and blocks until a reply,
// the timeout, or ctx cancellation. The host is re-resolved on every
// call so transient DNS failures recover on later iterations.
func (p *Prober) Probe(ctx context.Context, host string) Result {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return Result{Err: Classify(err)}
	}

	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	var res Result
	pinger.OnRecv = func(pkt *probing.Packet) {
		res.RTT = pkt.Rtt
		res.TTL = pkt.TTL
	}

	if err := pinger.RunWithContext(ctx); err != nil {
		return Result{Err: Classify(err)}
	}

	if pinger.Statistics().PacketsRecv == 0 {
		if ctx.Err() != nil {
			return Result{Err: ctx.Err()}
		}
		return Result{Err: ErrTimeout}
	}
	return res
}

// Detect chooses a working socket mode by probing the loopback
// address. It prefers unprivileged UDP (Linux ping_group_range) and
// falls back to a raw socket. A permission failure in both modes is
// returned so startup can fail with a clear message instead of
// logging an identical failure every iteration.
func (p *Prober) Detect(ctx context.Context) error {
	probe := &Prober{Timeout: 500 * time.Millisecond}

	probe.Privileged = false
	res := probe.Probe(ctx, "127.0.0.1")
	if !errors.Is(res.Err, ErrPermission) {
		p.Privileged = false
		return nil
	}

	probe.Privileged = true
	res = probe.Probe(ctx, "127.0.0.1")
	if !errors.Is(res.Err, ErrPermission) {
		p.Privileged = true
		return nil
	}

	return fmt.Errorf("%w (try setcap cap_net_raw, or sysctl net.ipv4.ping_group_range)", ErrPermission)
}

// Classify maps transport errors onto the failure taxonomy. Errors
// that fit no category pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %s", ErrResolution, dnsErr.Name)
	}

	if errors.Is(err, os.ErrPermission) ||
		errors.Is(err, syscall.EPERM) ||
		errors.Is(err, syscall.EACCES) {
		return fmt.Errorf("%w: %v", ErrPermission, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrTimeout
	}

	return err
}
