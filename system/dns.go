package system

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// FallbackDNSServer is queried when /etc/resolv.conf has no usable server.
const FallbackDNSServer = "8.8.8.8:53"

const dnsTimeout = 5 * time.Second

// DefaultDNSServer returns the first resolver from /etc/resolv.conf.
func DefaultDNSServer() string {
	config, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err == nil && len(config.Servers) > 0 {
		return net.JoinHostPort(config.Servers[0], config.Port)
	}

	return FallbackDNSServer
}

// LookupHost asks server (host:port, empty for the system default) for the
// A and AAAA records of host.
func LookupHost(host, server string) ([]string, error) {
	if len(server) == 0 {
		server = DefaultDNSServer()
	}
	if ip := net.ParseIP(host); ip != nil {
		return []string{ip.String()}, nil
	}

	c := &dns.Client{Timeout: dnsTimeout}
	answers := []string{}
	for _, question := range []uint16{dns.TypeA, dns.TypeAAAA} {
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(host), question)
		m.RecursionDesired = true

		r, _, err := c.Exchange(m, server)
		if err != nil {
			return nil, fmt.Errorf("dns %s: %w", host, err)
		}
		if r.Rcode != dns.RcodeSuccess {
			return nil, fmt.Errorf("dns %s: %s", host, dns.RcodeToString[r.Rcode])
		}

		for _, rr := range r.Answer {
			switch record := rr.(type) {
			case *dns.A:
				answers = append(answers, record.A.String())
			case *dns.AAAA:
				answers = append(answers, record.AAAA.String())
			}
		}
	}

	if len(answers) == 0 {
		return nil, errors.New("dns " + host + ": no address records")
	}

	return answers, nil
}
