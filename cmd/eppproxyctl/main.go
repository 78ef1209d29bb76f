package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/as207960/eppproxy/internal/rpcapi"
	"github.com/as207960/eppproxy/internal/rpcapi/pb"
)

var (
	fAddr       = flag.String("addr", "127.0.0.1:9651", "eppproxyd gRPC listen address")
	fRegistryID = flag.String("registry", "", "registry profile id")
	fTimeout    = flag.Duration("timeout", 30*time.Second, "request timeout")
	fInsecure   = flag.Bool("insecure", true, "skip TLS and dial in plaintext")
	fTLSCert    = flag.String("tls-cert", "", "CA certificate to verify the daemon with, when -insecure=false")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		log.Printf("Must specify a command.")
		usage()
		os.Exit(1)
	}
	if *fRegistryID == "" {
		log.Fatalf("Must specify -registry")
	}

	cc, err := dial()
	if err != nil {
		log.Fatalf("dialing %s: %v", *fAddr, err)
	}
	defer cc.Close()
	client := rpcapi.NewEppProxyClient(cc)

	ctx, cancel := context.WithTimeout(context.Background(), *fTimeout)
	defer cancel()

	switch args[0] {
	case "check":
		checkDomains(ctx, client, args[1:])
	case "info":
		infoDomain(ctx, client, args[1:])
	case "poll":
		poll(ctx, client, args[1:])
	case "pollack":
		pollAck(ctx, client, args[1:])
	default:
		log.Fatalf("Invalid command %v.", args[0])
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  eppproxyctl -registry=<id> check <domain> [<domain>...]\n")
	fmt.Fprintf(os.Stderr, "  eppproxyctl -registry=<id> info <domain>\n")
	fmt.Fprintf(os.Stderr, "  eppproxyctl -registry=<id> poll\n")
	fmt.Fprintf(os.Stderr, "  eppproxyctl -registry=<id> pollack <message-id>\n")
}

func dial() (*grpc.ClientConn, error) {
	if *fInsecure {
		return grpc.NewClient(*fAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	var creds credentials.TransportCredentials
	if *fTLSCert != "" {
		c, err := credentials.NewClientTLSFromFile(*fTLSCert, "")
		if err != nil {
			return nil, fmt.Errorf("loading ca cert: %w", err)
		}
		creds = c
	} else {
		creds = credentials.NewTLS(nil)
	}
	return grpc.NewClient(*fAddr, grpc.WithTransportCredentials(creds))
}

func checkDomains(ctx context.Context, c rpcapi.EppProxyClient, names []string) {
	if len(names) == 0 {
		log.Fatalf("check requires at least one domain name")
	}
	resp, err := c.DomainCheck(ctx, &pb.DomainCheckRequest{
		RegistryID: *fRegistryID,
		Names:      names,
	})
	if err != nil {
		log.Fatalf("DomainCheck: %v", err)
	}
	if resp.Error != nil {
		log.Fatalf("registry error: %s: %s", resp.Error.Kind, resp.Error.Message)
	}
	for _, d := range resp.Domains {
		state := "unavailable"
		if d.Available {
			state = "available"
		}
		line := fmt.Sprintf("%-30s %s", d.Name, state)
		if d.Reason != "" {
			line += " (" + d.Reason + ")"
		}
		fmt.Println(line)
	}
}

func infoDomain(ctx context.Context, c rpcapi.EppProxyClient, args []string) {
	if len(args) != 1 {
		log.Fatalf("info requires exactly one domain name")
	}
	resp, err := c.DomainInfo(ctx, &pb.DomainInfoRequest{
		RegistryID: *fRegistryID,
		Name:       args[0],
	})
	if err != nil {
		log.Fatalf("DomainInfo: %v", err)
	}
	if resp.Error != nil {
		log.Fatalf("registry error: %s: %s", resp.Error.Kind, resp.Error.Message)
	}
	printJSON(resp)
}

func poll(ctx context.Context, c rpcapi.EppProxyClient, _ []string) {
	resp, err := c.Poll(ctx, &pb.PollRequest{RegistryID: *fRegistryID})
	if err != nil {
		log.Fatalf("Poll: %v", err)
	}
	if resp.Error != nil {
		log.Fatalf("registry error: %s: %s", resp.Error.Kind, resp.Error.Message)
	}
	if resp.Empty {
		fmt.Println("queue empty")
		return
	}
	printJSON(resp)
}

func pollAck(ctx context.Context, c rpcapi.EppProxyClient, args []string) {
	if len(args) != 1 {
		log.Fatalf("pollack requires exactly one message id")
	}
	resp, err := c.PollAck(ctx, &pb.PollAckRequest{
		RegistryID: *fRegistryID,
		MessageID:  args[0],
	})
	if err != nil {
		log.Fatalf("PollAck: %v", err)
	}
	if resp.Error != nil {
		log.Fatalf("registry error: %s: %s", resp.Error.Kind, resp.Error.Message)
	}
	fmt.Printf("acked, queue depth now %d\n", resp.QueueDepth)
	if resp.NextID != "" {
		fmt.Printf("next message: %s\n", resp.NextID)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encoding response: %v", err)
	}
}
