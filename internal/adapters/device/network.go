package device

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultProbeTimeout = 3 * time.Second

// NetworkProbe considers the network up when the api host resolves.
type NetworkProbe struct {
	host     string
	timeout  time.Duration
	resolver *net.Resolver
}

func NewNetworkProbe(host string, timeout time.Duration) *NetworkProbe {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	return &NetworkProbe{host: host, timeout: timeout, resolver: net.DefaultResolver}
}

func (p *NetworkProbe) IsConnected(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	addrs, err := p.resolver.LookupHost(ctx, p.host)
	if err != nil || len(addrs) == 0 {
		log.Debug().Err(err).Str("host", p.host).Msg("network unavailable")
		return false
	}

	return true
}
