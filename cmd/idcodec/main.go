package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/proconnect-api/internal/config"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
	"github.com/riskibarqy/proconnect-api/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/proconnect-api/internal/platform/idcodec"
	"github.com/riskibarqy/proconnect-api/internal/usecase"
	"github.com/spf13/cobra"
)

// errPartialFailure makes the process exit non-zero after every argument
// has been printed.
var errPartialFailure = errors.New("one or more values could not be converted")

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errPartialFailure) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

type codecFlags struct {
	kind     string
	secret   string
	alphabet string
}

func (f codecFlags) codec() (*idcodec.Codec, error) {
	root, err := idcodec.New(idcodec.Config{Alphabet: f.alphabet, Secret: f.secret})
	if err != nil {
		return nil, err
	}
	return usecase.NewCodecs(root).ForKind(f.kind)
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := codecFlags{}

	root := &cobra.Command{
		Use:           "idcodec",
		Short:         "Convert between database ids and public id tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&flags.kind, "kind", usecase.KindUser, "resource kind: user or investor")
	root.PersistentFlags().StringVar(&flags.secret, "secret", os.Getenv("IDCODEC_SECRET"), "codec secret (defaults to IDCODEC_SECRET)")
	root.PersistentFlags().StringVar(&flags.alphabet, "alphabet", os.Getenv("IDCODEC_ALPHABET"), "codec alphabet (defaults to IDCODEC_ALPHABET or the built-in alphabet)")

	root.AddCommand(newEncodeCmd(&flags), newDecodeCmd(&flags), newTokenCmd(&flags))
	return root
}

func newEncodeCmd(flags *codecFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <id>...",
		Short: "Print the public token for each id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := flags.codec()
			if err != nil {
				return err
			}

			failed := false
			for _, arg := range args {
				id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "invalid")
					failed = true
					continue
				}
				token, err := codec.Encode(id)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "invalid")
					failed = true
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
			}
			if failed {
				return errPartialFailure
			}
			return nil
		},
	}
}

func newDecodeCmd(flags *codecFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>...",
		Short: "Print the id behind each public token",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := flags.codec()
			if err != nil {
				return err
			}

			failed := false
			for _, arg := range args {
				id, err := codec.Decode(arg)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "invalid")
					failed = true
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			if failed {
				return errPartialFailure
			}
			return nil
		},
	}
}

// newTokenCmd signs a development access token whose subject is the member's
// public id, for exercising the authenticated routes locally.
func newTokenCmd(flags *codecFlags) *cobra.Command {
	var (
		userID   int64
		email    string
		ttl      time.Duration
		secret   string
		issuer   string
		audience string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an HS256 access token for a member id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := idcodec.New(idcodec.Config{Alphabet: flags.alphabet, Secret: flags.secret})
			if err != nil {
				return err
			}
			if secret == "" {
				secret = config.DevJWTSecret
			}

			issuerCodec := usecase.NewCodecs(root).User()
			verifier, err := jwtauth.NewVerifier(jwtauth.Config{Secret: secret, Issuer: issuer, Audience: audience}, issuerCodec)
			if err != nil {
				return err
			}
			token, err := verifier.Issue(user.Principal{UserID: userID, Email: email}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "member database id")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	cmd.Flags().StringVar(&secret, "jwt-secret", os.Getenv("AUTH_JWT_SECRET"), "signing secret (defaults to AUTH_JWT_SECRET, then the dev secret)")
	cmd.Flags().StringVar(&issuer, "issuer", os.Getenv("AUTH_JWT_ISSUER"), "iss claim")
	cmd.Flags().StringVar(&audience, "audience", os.Getenv("AUTH_JWT_AUDIENCE"), "aud claim")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
