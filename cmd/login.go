package cmd

import (
	"fmt"

	keelhttp "github.com/foomo/keel/net/http"
	"github.com/foomo/wca/pkg/auth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewLoginCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials in the os keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := zap.L()
			c := auth.Credentials{
				Endpoint:     endpointOrPod(v),
				ClientID:     clientIDFlag(v),
				ClientSecret: clientSecretFlag(v),
				RefreshToken: refreshTokenFlag(v),
			}
			if err := c.Validate(); err != nil {
				return err
			}

			if verify, _ := cmd.Flags().GetBool("verify"); verify {
				httpClient := keelhttp.NewHTTPClient(keelhttp.HTTPClientWithTimeout(timeoutFlag(v)))
				ts, err := auth.NewTokenSource(cmd.Context(), httpClient, c)
				if err != nil {
					return err
				}
				if _, err := ts.Token(); err != nil {
					return errors.Wrap(err, "failed to obtain an access token with the given credentials")
				}
			}

			store, err := auth.OpenStore(l)
			if err != nil {
				return err
			}
			if err := store.Save(profileFlag(v), c); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored credentials for profile %q\n", profileFlag(v))
			return err
		},
	}

	flags := cmd.Flags()
	flags.Bool("verify", true, "Obtain an access token before storing the credentials")
	addPodFlag(flags, v)
	addEndpointFlag(flags, v)
	addClientIDFlag(flags, v)
	addClientSecretFlag(flags, v)
	addRefreshTokenFlag(flags, v)
	addProfileFlag(flags, v)
	addTimeoutFlag(flags, v)

	return cmd
}

func NewLogoutCommand() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove credentials from the os keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := auth.OpenStore(zap.L())
			if err != nil {
				return err
			}
			if err := store.Remove(profileFlag(v)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed credentials for profile %q\n", profileFlag(v))
			return err
		},
	}

	addProfileFlag(cmd.Flags(), v)

	return cmd
}
