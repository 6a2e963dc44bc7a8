package bootstrap

import (
	ringConfig "ChordDHT/internal/config"
	"ChordDHT/internal/domain"
	"ChordDHT/internal/logger"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// DNSBootstrap discovers bootstrap peers by querying an arbitrary DNS
// resolver for SRV (or plain A/AAAA) records, and optionally registers
// this node's own record into a zone served by CoreDNS's etcd plugin.
// Discovery and registration are independent: a deployment can resolve
// against a third party's zone while registering nowhere (Register is
// then a no-op), or vice versa.
type DNSBootstrap struct {
	lgr logger.Logger
	cfg ringConfig.DNSConfig

	etcd     *clientv3.Client
	basePath string
	ttl      int64
	leaseID  clientv3.LeaseID
}

// NewDNSBootstrap constructs a DNSBootstrap. If cfg.Register.Enabled,
// it dials the etcd endpoints backing the CoreDNS zone; discovery
// itself never requires etcd.
func NewDNSBootstrap(cfg ringConfig.DNSConfig, lgr logger.Logger) (*DNSBootstrap, error) {
	if lgr == nil {
		lgr = &logger.NopLogger{}
	}
	b := &DNSBootstrap{lgr: lgr, cfg: cfg}
	if cfg.Register.Enabled {
		cli, err := clientv3.New(clientv3.Config{
			Endpoints:   cfg.Register.Endpoints,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("dns bootstrap: etcd dial: %w", err)
		}
		b.etcd = cli
		b.basePath = strings.TrimSuffix(cfg.Register.BasePath, "/")
		b.ttl = cfg.Register.TTL
	}
	return b, nil
}

// record is the JSON value stored under each node's etcd key, shaped
// for CoreDNS's etcd plugin to serve as an SRV record.
type record struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Priority int    `json:"priority"`
	Weight   int    `json:"weight"`
	TTL      int64  `json:"ttl,omitempty"`
}

func (b *DNSBootstrap) key(nodeID domain.ID) string {
	return fmt.Sprintf("%s/dht/chord/_tcp/_chord/%s", b.basePath, nodeID.ToHexString(true))
}

// Discover resolves bootstrap peers into "host:port" addresses. On any
// DNS failure it returns an empty list rather than an error: a node
// with no discoverable peers still forms a valid (if lonely) ring, and
// should not fail to start over a transient resolver hiccup.
func (b *DNSBootstrap) Discover(ctx context.Context) ([]string, error) {
	client := &dns.Client{Timeout: 2 * time.Second}

	server := b.cfg.Resolver
	if server == "" {
		server = "8.8.8.8:53"
	} else if !strings.Contains(server, ":") {
		server += ":53"
	}

	qctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if b.cfg.SRV {
		return b.discoverSRV(qctx, client, server)
	}
	return b.discoverHost(qctx, client, server, b.cfg.DNSName, b.cfg.Port)
}

func (b *DNSBootstrap) discoverSRV(ctx context.Context, client *dns.Client, server string) ([]string, error) {
	name := fmt.Sprintf("_%s._%s.%s", b.cfg.Service, b.cfg.Proto, b.cfg.DNSName)
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeSRV)
	b.lgr.Info("sending SRV query", logger.F("qname", msg.Question[0].Name))

	in, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		b.lgr.Warn("SRV lookup failed", logger.F("err", err), logger.F("qname", name))
		return nil, nil
	}
	if len(in.Answer) == 0 {
		b.lgr.Warn("SRV lookup returned no answers", logger.F("qname", name))
		return nil, nil
	}

	// Map target name -> IPs from the Additional section, so most
	// answers resolve without a second round trip.
	glue := map[string][]string{}
	for _, extra := range in.Extra {
		switch rr := extra.(type) {
		case *dns.A:
			n := strings.TrimSuffix(rr.Hdr.Name, ".")
			glue[n] = append(glue[n], rr.A.String())
		case *dns.AAAA:
			n := strings.TrimSuffix(rr.Hdr.Name, ".")
			glue[n] = append(glue[n], rr.AAAA.String())
		}
	}

	var out []string
	for _, ans := range in.Answer {
		srv, ok := ans.(*dns.SRV)
		if !ok {
			continue
		}
		target := strings.TrimSuffix(srv.Target, ".")
		ips, found := glue[target]
		if !found {
			ips, _ = b.resolveHost(ctx, client, server, target)
		}
		for _, ip := range ips {
			out = append(out, hostPort(ip, int(srv.Port)))
		}
	}
	return out, nil
}

func (b *DNSBootstrap) discoverHost(ctx context.Context, client *dns.Client, server, name string, port int) ([]string, error) {
	ips, err := b.resolveHost(ctx, client, server, name)
	if err != nil {
		b.lgr.Warn("host lookup failed", logger.F("err", err), logger.F("qname", name))
		return nil, nil
	}
	if len(ips) == 0 {
		b.lgr.Warn("host lookup returned no addresses", logger.F("qname", name))
		return nil, nil
	}
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		out = append(out, hostPort(ip, port))
	}
	return out, nil
}

// resolveHost queries A then, if empty, AAAA records for name.
func (b *DNSBootstrap) resolveHost(ctx context.Context, client *dns.Client, server, name string) ([]string, error) {
	fqdn := dns.Fqdn(name)

	msg := new(dns.Msg)
	msg.SetQuestion(fqdn, dns.TypeA)
	in, _, err := client.ExchangeContext(ctx, msg, server)
	if err == nil {
		var out []string
		for _, ans := range in.Answer {
			if a, ok := ans.(*dns.A); ok {
				out = append(out, a.A.String())
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}

	msg6 := new(dns.Msg)
	msg6.SetQuestion(fqdn, dns.TypeAAAA)
	in6, _, err6 := client.ExchangeContext(ctx, msg6, server)
	if err6 != nil {
		return nil, err6
	}
	var out []string
	for _, ans := range in6.Answer {
		if aaaa, ok := ans.(*dns.AAAA); ok {
			out = append(out, aaaa.AAAA.String())
		}
	}
	return out, nil
}

func hostPort(ip string, port int) string {
	if strings.Contains(ip, ":") {
		return fmt.Sprintf("[%s]:%d", ip, port)
	}
	return fmt.Sprintf("%s:%d", ip, port)
}

// Register writes a leased key holding this node's SRV record into
// etcd. It is a no-op when registration is disabled. Each call grants
// a fresh lease of ttl seconds and rewrites the key under it; earlier
// leases are neither revoked nor kept alive, so the record expires ttl
// seconds after the most recent call.
func (b *DNSBootstrap) Register(ctx context.Context, node *domain.Node) error {
	if b.etcd == nil {
		return nil
	}
	host, port, err := splitHostPort(node.Addr)
	if err != nil {
		return fmt.Errorf("dns bootstrap: register: %w", err)
	}

	rec := record{Host: host, Port: port, Priority: 10, Weight: 100, TTL: b.ttl}
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("dns bootstrap: marshal record: %w", err)
	}

	lease, err := b.etcd.Grant(ctx, b.ttl)
	if err != nil {
		return fmt.Errorf("dns bootstrap: grant lease: %w", err)
	}
	b.leaseID = lease.ID

	if _, err := b.etcd.Put(ctx, b.key(node.ID), string(val), clientv3.WithLease(lease.ID)); err != nil {
		return fmt.Errorf("dns bootstrap: put record: %w", err)
	}
	return nil
}

// Deregister removes this node's record from etcd. No-op when
// registration is disabled.
func (b *DNSBootstrap) Deregister(ctx context.Context, node *domain.Node) error {
	if b.etcd == nil {
		return nil
	}
	_, err := b.etcd.Delete(ctx, b.key(node.ID))
	return err
}

// Close releases the etcd client, if one was dialed. Safe to call on
// a DNSBootstrap with registration disabled.
func (b *DNSBootstrap) Close() error {
	if b.etcd == nil {
		return nil
	}
	return b.etcd.Close()
}

func splitHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}
