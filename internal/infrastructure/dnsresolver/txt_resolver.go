package dnsresolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// TXTResolver queries TXT records directly against configured upstream
// servers, bypassing the host resolver and its negative cache so a freshly
// published verification record is seen right away.
type TXTResolver struct {
	client    *dns.Client
	tcpClient *dns.Client
	upstreams []string
	logger    *logrus.Logger
}

func NewTXTResolver(upstreams []string, timeout time.Duration, logger *logrus.Logger) *TXTResolver {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &TXTResolver{
		client:    &dns.Client{Net: "udp", Timeout: timeout},
		tcpClient: &dns.Client{Net: "tcp", Timeout: timeout},
		upstreams: upstreams,
		logger:    logger,
	}
}

// LookupTXT returns every TXT string published at name, joining multi-string
// records. NXDOMAIN is an empty answer, not an error.
func (r *TXTResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	if len(r.upstreams) == 0 {
		return nil, errors.New("no DNS upstream configured")
	}
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(strings.ToLower(name)), dns.TypeTXT)
	m.RecursionDesired = true

	var lastErr error
	for _, upstream := range r.upstreams {
		resp, err := r.exchange(ctx, m, upstream)
		if err != nil {
			lastErr = err
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"upstream": upstream, "name": name}).WithError(err).Debug("TXT query failed")
			}
			continue
		}
		switch resp.Rcode {
		case dns.RcodeSuccess, dns.RcodeNameError:
			return txtValues(resp.Answer), nil
		default:
			lastErr = fmt.Errorf("upstream %s answered %s", upstream, dns.RcodeToString[resp.Rcode])
		}
	}
	return nil, fmt.Errorf("TXT lookup for %s failed: %w", name, lastErr)
}

func (r *TXTResolver) exchange(ctx context.Context, m *dns.Msg, upstream string) (*dns.Msg, error) {
	resp, _, err := r.client.ExchangeContext(ctx, m, upstream)
	if err != nil {
		return nil, err
	}
	if resp.Truncated {
		resp, _, err = r.tcpClient.ExchangeContext(ctx, m, upstream)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func txtValues(answer []dns.RR) []string {
	var out []string
	for _, rr := range answer {
		if txt, ok := rr.(*dns.TXT); ok {
			out = append(out, strings.Join(txt.Txt, ""))
		}
	}
	return out
}

var _ ports.TXTResolver = (*TXTResolver)(nil)
