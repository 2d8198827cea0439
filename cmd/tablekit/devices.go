package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/muurk/tablekit/internal/config"
)

var devicePlatform string

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Manage linked devices",
}

var devicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List linked devices",
	RunE:  runDevicesList,
}

var devicesLinkCmd = &cobra.Command{
	Use:     "link <name>",
	Short:   "Link a device to this account",
	Example: `  tablekit devices link "Work laptop" --platform linux`,
	Args:    cobra.ExactArgs(1),
	RunE:    runDevicesLink,
}

var devicesUnlinkCmd = &cobra.Command{
	Use:   "unlink <id>",
	Short: "Unlink a device by ID or unique ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runDevicesUnlink,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.AddCommand(devicesListCmd, devicesLinkCmd, devicesUnlinkCmd)

	devicesLinkCmd.Flags().StringVar(&devicePlatform, "platform", "", "Device platform (e.g. linux, ios)")
}

func runDevicesList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(cfg.LinkedDevices) == 0 {
		fmt.Fprintln(out, "No linked devices.")
		return nil
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PLATFORM", "LAST SEEN")
	for _, d := range cfg.LinkedDevices {
		seen := "-"
		if !d.LastSeen.IsZero() {
			seen = d.LastSeen.Local().Format("2006-01-02 15:04")
		}
		t.Row(shortID(d.ID), d.Name, d.Platform, seen)
	}
	_, err := fmt.Fprintln(out, t.Render())
	return err
}

func runDevicesLink(cmd *cobra.Command, args []string) error {
	d := config.NewLinkedDevice(args[0], devicePlatform)
	cfg.LinkDevice(d)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Linked %s (%s)\n", d.Name, shortID(d.ID))
	return nil
}

func runDevicesUnlink(cmd *cobra.Command, args []string) error {
	d := cfg.FindDevice(args[0])
	if d == nil {
		return fmt.Errorf("no single linked device matches %q", args[0])
	}
	cfg.UnlinkDevice(d.ID)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s\n", d.Name)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
