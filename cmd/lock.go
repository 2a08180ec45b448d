package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
)

func init() {
	rootCmd.AddCommand(lockEntityCmd())
	rootCmd.AddCommand(unlockEntityCmd())
}

func lockEntityCmd() *cobra.Command {
	return refCmd("lock", "take or refresh the edit lock of an entity", func(ctx context.Context, client v1.CatalogClient, ref *v1.EntityRef) error {
		res, err := client.LockEntity(ctx, ref)
		if err != nil {
			return err
		}
		printField("Locked by", res.Lock.LockedBy)
		printField("Expires", formatTime(&res.Lock.ExpiresAt))
		return nil
	})
}

func unlockEntityCmd() *cobra.Command {
	return refCmd("unlock", "release the edit lock of an entity", func(ctx context.Context, client v1.CatalogClient, ref *v1.EntityRef) error {
		if _, err := client.UnlockEntity(ctx, ref); err != nil {
			return err
		}
		color.Green("%s %s unlocked", ref.Kind, ref.ID)
		return nil
	})
}
