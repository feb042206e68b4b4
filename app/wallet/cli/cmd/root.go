// Package cmd contains the wallet app.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rhizanet/rhiza/foundation/dag/keys"
	"github.com/rhizanet/rhiza/foundation/dag/wallet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const keyExtension = ".json"

var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Rhiza wallet",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("account", "a", "private.json", "Name of the keystore file.")
	rootCmd.PersistentFlags().StringP("account-path", "p", "zblock/accounts/", "Path to the directory with keystore files.")
	rootCmd.PersistentFlags().StringP("url", "u", "http://localhost:8080", "Url of the node.")

	// Environment variables with the WALLET prefix override the flag
	// defaults, WALLET_URL for example.
	viper.SetEnvPrefix("WALLET")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlags(rootCmd.PersistentFlags())
}

func getKeyStorePath() string {
	name := viper.GetString("account")
	if !strings.HasSuffix(name, keyExtension) {
		name += keyExtension
	}

	return filepath.Join(viper.GetString("account-path"), name)
}

func nodeURL() string {
	return viper.GetString("url")
}

func loadKeyPair() (keys.KeyPair, error) {
	ks, err := wallet.LoadKeyStore(getKeyStorePath())
	if err != nil {
		return keys.KeyPair{}, fmt.Errorf("loading keystore: %w", err)
	}

	return ks.KeyPair()
}
