package proxy

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
)

// Pool rotates requests across a fixed list of proxies
type Pool struct {
	proxies []*url.URL
	next    atomic.Uint64
}

// Parse builds a Pool from a comma separated proxy list such as
// "http://a:8080,socks5://b:1080". An empty list yields a nil Pool.
func Parse(list string) (*Pool, error) {
	var proxies []*url.URL
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", raw)
		}
		switch u.Scheme {
		case "http", "https", "socks5", "socks5h":
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
		}
		proxies = append(proxies, u)
	}
	if len(proxies) == 0 {
		return nil, nil
	}
	return &Pool{proxies: proxies}, nil
}

// Len returns the number of proxies in the pool
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}

// First returns the first configured proxy, used where only one can be set
func (p *Pool) First() *url.URL {
	if p.Len() == 0 {
		return nil
	}
	return p.proxies[0]
}

// GetNext returns the next proxy in round-robin order
func (p *Pool) GetNext() *url.URL {
	if p.Len() == 0 {
		return nil
	}
	n := p.next.Add(1) - 1
	return p.proxies[n%uint64(len(p.proxies))]
}

// ProxyFunc is suitable for http.Transport.Proxy
func (p *Pool) ProxyFunc(*http.Request) (*url.URL, error) {
	return p.GetNext(), nil
}
