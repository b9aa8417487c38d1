package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/OpenZeppelin/defender-sdk-go/pkg/config"
)

func main() {
	app := &cli.App{
		Name:  "defender-relayer",
		Usage: "Send transactions and sign messages through a Defender relayer",
		Description: `A command line client for a Defender relayer.

Credentials are either a relayer API key and secret, or the temporary
credentials and relayer ARN handed to an action. The serve command exposes
the relayer as a JSON-RPC endpoint that wallets and libraries can use as a node.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Relayer API key",
				EnvVars: []string{config.EnvRelayerApiKey},
			},
			&cli.StringFlag{
				Name:    "api-secret",
				Usage:   "Relayer API secret",
				EnvVars: []string{config.EnvRelayerApiSecret},
			},
			&cli.StringFlag{
				Name:    "credentials",
				Usage:   "Action credentials JSON (AccessKeyId, SecretAccessKey, SessionToken)",
				EnvVars: []string{config.EnvRelayerCredentials},
			},
			&cli.StringFlag{
				Name:    "relayer-arn",
				Usage:   "Relayer ARN used with action credentials",
				EnvVars: []string{config.EnvRelayerARN},
			},
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Relay signer API base URL",
				Value:   config.DefaultRelaySignerApiUrl,
				EnvVars: []string{config.EnvRelaySignerApiUrl},
			},
			&cli.Float64Flag{
				Name:  "rate-limit",
				Usage: "Maximum platform API requests per second (0 disables limiting)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvRelayerVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "get-relayer",
				Usage:  "Show the relayer",
				Action: getRelayerCommand,
			},
			{
				Name:   "status",
				Usage:  "Show the relayer status, nonce and pending transactions",
				Action: statusCommand,
			},
			{
				Name:   "send-tx",
				Usage:  "Send a transaction",
				Flags:  transactionFlags(),
				Action: sendTransactionCommand,
			},
			{
				Name:  "replace-tx",
				Usage: "Replace a pending transaction by id or nonce",
				Flags: append(transactionFlags(),
					&cli.StringFlag{
						Name:  "id",
						Usage: "Transaction id to replace",
					},
					&cli.Uint64Flag{
						Name:  "nonce",
						Usage: "Nonce of the transaction to replace",
					},
				),
				Action: replaceTransactionCommand,
			},
			{
				Name:  "get-tx",
				Usage: "Show a transaction",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Transaction id",
						Required: true,
					},
				},
				Action: getTransactionCommand,
			},
			{
				Name:  "list-txs",
				Usage: "List transactions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status (pending, mined, failed, ...)",
					},
					&cli.TimestampFlag{
						Name:   "since",
						Usage:  "Only transactions created after this time",
						Layout: "2006-01-02T15:04:05Z07:00",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of transactions",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order (asc or desc)",
					},
					&cli.StringFlag{
						Name:  "next",
						Usage: "Pagination cursor from a previous page",
					},
					&cli.BoolFlag{
						Name:  "paginate",
						Usage: "Request a paginated response",
					},
				},
				Action: listTransactionsCommand,
			},
			{
				Name:  "sign",
				Usage: "Sign a message with the relayer key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "message",
						Usage:    "Message to sign (0x-prefixed hex is signed as bytes)",
						Required: true,
					},
				},
				Action: signCommand,
			},
			{
				Name:  "sign-typed-data",
				Usage: "Sign EIP-712 typed data with the relayer key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to an EIP-712 typed data JSON document",
						Required: true,
					},
				},
				Action: signTypedDataCommand,
			},
			{
				Name:  "rpc",
				Usage: "Issue a JSON-RPC call through the relayer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "method",
						Usage:    "JSON-RPC method",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "params",
						Usage: "JSON array of params",
						Value: "[]",
					},
				},
				Action: rpcCommand,
			},
			{
				Name:  "serve",
				Usage: "Serve a JSON-RPC endpoint that sends and signs through the relayer",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   8545,
						Usage:   "HTTP server port",
					},
					&cli.StringFlag{
						Name:    "rpc-url",
						Usage:   "Node URL for reads and subscriptions (defaults to the relayer's JSON-RPC endpoint)",
						EnvVars: []string{config.EnvRelayerRpcUrl},
					},
					&cli.StringFlag{
						Name:  "speed",
						Usage: "Speed applied to every transaction (safeLow, average, fast, fastest)",
					},
					&cli.Int64Flag{
						Name:  "valid-for",
						Usage: "Seconds each transaction stays valid",
					},
					&cli.StringFlag{
						Name:  "store",
						Usage: "Transaction index store (memory, redis, badger)",
						Value: config.StoreType_Memory.String(),
					},
					&cli.StringFlag{
						Name:  "redis-address",
						Usage: "Redis address for the redis store",
					},
					&cli.StringFlag{
						Name:  "redis-password",
						Usage: "Redis password for the redis store",
					},
					&cli.IntFlag{
						Name:  "redis-db",
						Usage: "Redis database for the redis store",
					},
					&cli.StringFlag{
						Name:  "badger-path",
						Usage: "Data directory for the badger store",
					},
				},
				Action: serveCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func transactionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "to",
			Usage: "Recipient address",
		},
		&cli.StringFlag{
			Name:  "value",
			Usage: "Value in wei (decimal or 0x hex)",
		},
		&cli.StringFlag{
			Name:  "data",
			Usage: "Call data (0x hex)",
		},
		&cli.StringFlag{
			Name:  "gas-limit",
			Usage: "Gas limit",
		},
		&cli.StringFlag{
			Name:  "speed",
			Usage: "Speed (safeLow, average, fast, fastest)",
		},
		&cli.StringFlag{
			Name:  "gas-price",
			Usage: "Legacy gas price in wei",
		},
		&cli.StringFlag{
			Name:  "max-fee-per-gas",
			Usage: "EIP-1559 max fee per gas in wei",
		},
		&cli.StringFlag{
			Name:  "max-priority-fee-per-gas",
			Usage: "EIP-1559 max priority fee per gas in wei",
		},
		&cli.Int64Flag{
			Name:  "valid-for",
			Usage: "Seconds the transaction stays valid",
		},
		&cli.BoolFlag{
			Name:  "private",
			Usage: "Submit through a private mempool",
		},
		&cli.StringFlag{
			Name:  "private-mode",
			Usage: "Private mempool mode (flashbots-normal, flashbots-fast)",
		},
	}
}
