// Package sync implements the Google Drive backup channel: one backup object
// per account, kept in the hidden application data folder.
package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneyflow/cmd/root"
	"moneyflow/internal/backup"
	"moneyflow/internal/models"
)

// Cmd represents the sync command.
var Cmd = &cobra.Command{
	Use:   "sync",
	Short: "Back up the state to Google Drive",
	Long: `Sync keeps a single backup object in the Google Drive application data
folder, invisible to the rest of the Drive account. Run 'sync login'
once to authorize, then upload and download at will.

The OAuth client id comes from sync.client_id in the config file or
MONEYFLOW_SYNC_CLIENT_ID; the client secret is only ever read from
MONEYFLOW_SYNC_CLIENT_SECRET or GOOGLE_CLIENT_SECRET.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize Drive access interactively",
	RunE:  loginFunc,
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the current state, replacing the remote backup",
	RunE:  uploadFunc,
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Restore the state from the remote backup",
	RunE:  downloadFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the remote backup",
	RunE:  deleteFunc,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show remote backup metadata",
	RunE:  infoFunc,
}

func init() {
	Cmd.AddCommand(loginCmd)
	Cmd.AddCommand(uploadCmd)
	Cmd.AddCommand(downloadCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(infoCmd)
}

func oauthConfig() (backup.OAuthConfig, error) {
	cfg := backup.OAuthConfig{
		ClientID:     root.Cfg.Sync.ClientID,
		ClientSecret: root.Cfg.Sync.ClientSecret,
		TokenFile:    root.Cfg.Sync.TokenFile,
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return cfg, fmt.Errorf("Drive sync is not configured, set sync.client_id and the client secret environment variable")
	}
	return cfg, nil
}

func driveClient(cmd *cobra.Command) (*backup.DriveClient, error) {
	cfg, err := oauthConfig()
	if err != nil {
		return nil, err
	}
	ts, err := backup.TokenSource(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	return backup.NewDriveClient(cmd.Context(), ts, root.Log)
}

func loginFunc(cmd *cobra.Command, args []string) error {
	cfg, err := oauthConfig()
	if err != nil {
		return err
	}
	if _, err := backup.Authenticate(cmd.Context(), cfg, root.Log); err != nil {
		return err
	}
	fmt.Println("Authorized. Token cached for future sync commands.")
	return nil
}

func uploadFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	client, err := driveClient(cmd)
	if err != nil {
		return err
	}
	doc := backup.Export(sess.State())
	if err := client.Upload(cmd.Context(), doc); err != nil {
		return err
	}
	fmt.Printf("Uploaded %d transactions.\n", len(doc.Transactions))
	return nil
}

func downloadFunc(cmd *cobra.Command, args []string) error {
	sess, err := root.OpenSession()
	if err != nil {
		return err
	}
	client, err := driveClient(cmd)
	if err != nil {
		return err
	}

	doc, err := client.Download(cmd.Context())
	if err != nil {
		return err
	}
	if doc == nil {
		fmt.Println("No remote backup found.")
		return nil
	}

	current := sess.State()
	restored := &models.AppState{
		Transactions:        current.Transactions,
		Categories:          current.Categories,
		ImportProfiles:      current.ImportProfiles,
		CategoryResolutions: current.CategoryResolutions,
	}
	backup.Apply(restored, doc)
	if err := sess.Restore(restored); err != nil {
		return err
	}
	fmt.Printf("Restored %d transactions (exported %s).\n", len(restored.Transactions), doc.ExportDate)
	return nil
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	client, err := driveClient(cmd)
	if err != nil {
		return err
	}
	if err := client.Delete(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Remote backup deleted.")
	return nil
}

func infoFunc(cmd *cobra.Command, args []string) error {
	client, err := driveClient(cmd)
	if err != nil {
		return err
	}
	info, err := client.Info(cmd.Context())
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Println("No remote backup found.")
		return nil
	}
	fmt.Printf("Name:     %s\nModified: %s\nSize:     %d bytes\n", info.Name, info.ModifiedTime, info.Size)
	return nil
}
