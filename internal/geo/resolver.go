package geo

import (
	"context"
	"log/slog"
	"net/netip"
	"strings"
	"time"
)

// Resolver resolves client addresses through a primary provider with a
// single fallback. Resolution never fails: private addresses short
// circuit to a local result, and when every provider errors the caller
// gets a sentinel Info with the Error field set.
type Resolver struct {
	primary  Provider
	fallback Provider
	threat   ThreatChecker
	timeout  time.Duration
	log      *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithThreatChecker replaces the default heuristic threat checker.
func WithThreatChecker(tc ThreatChecker) ResolverOption {
	return func(r *Resolver) {
		if tc != nil {
			r.threat = tc
		}
	}
}

// WithTimeout bounds the total time spent across both providers.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger for provider failures.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a resolver over the given providers. The fallback
// may be nil, in which case a primary failure degrades straight to the
// unknown sentinel.
func NewResolver(primary, fallback Provider, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		primary:  primary,
		fallback: fallback,
		threat:   NewHeuristicChecker(),
		timeout:  5 * time.Second,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewResolverFromConfig builds a resolver with the stock ip-api.com and
// ipapi.co providers.
func NewResolverFromConfig(cfg Config, opts ...ResolverOption) *Resolver {
	primary := NewIPAPIProvider(cfg.PrimaryURL, cfg.Timeout)
	fallback := NewIPAPICoProvider(cfg.FallbackURL, cfg.Timeout)
	opts = append([]ResolverOption{WithTimeout(cfg.Timeout)}, opts...)
	return NewResolver(primary, fallback, opts...)
}

// Resolve looks up geolocation for addr. It always returns a usable
// Info; degraded results carry the failure in the Error field.
func (r *Resolver) Resolve(ctx context.Context, addr string) Info {
	addr = normalizeAddr(addr)

	if isPrivate(addr) {
		return localInfo()
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	info, err := r.primary.Lookup(ctx, addr)
	if err != nil {
		r.log.WarnContext(ctx, "primary geo provider failed",
			slog.String("provider", r.primary.Name()),
			slog.String("error", err.Error()))

		if r.fallback == nil {
			return r.enrich(ctx, addr, unknownInfo(err.Error()))
		}

		info, err = r.fallback.Lookup(ctx, addr)
		if err != nil {
			r.log.WarnContext(ctx, "fallback geo provider failed",
				slog.String("provider", r.fallback.Name()),
				slog.String("error", err.Error()))
			return r.enrich(ctx, addr, unknownInfo("all geolocation providers failed"))
		}
	}

	return r.enrich(ctx, addr, info)
}

func (r *Resolver) enrich(ctx context.Context, addr string, info Info) Info {
	info.Flag = Flag(info.CountryCode)
	info.Threat = r.threat.Check(ctx, addr, info)
	return info
}

// normalizeAddr strips the IPv4-mapped IPv6 prefix so providers see the
// plain dotted form.
func normalizeAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if a, err := netip.ParseAddr(addr); err == nil && a.Is4In6() {
		return a.Unmap().String()
	}
	return addr
}

// isPrivate reports whether addr is outside any provider's reach:
// empty, unparseable, loopback, link-local, unspecified, or in a
// private range (10/8, 172.16/12, 192.168/16, fc00::/7).
func isPrivate(addr string) bool {
	if addr == "" {
		return true
	}
	a, err := netip.ParseAddr(addr)
	if err != nil {
		return true
	}
	a = a.Unmap()
	return a.IsLoopback() || a.IsPrivate() || a.IsLinkLocalUnicast() || a.IsUnspecified()
}
