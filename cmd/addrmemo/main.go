// AddrMemo - приложение в системном трее для опознания криптоадресов.
//
// По горячей клавише (по умолчанию Super/Cmd+J) копирует выделенный текст,
// ищет адрес в локальном файле и показывает его описание в уведомлении.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"addrmemo/internal/app"
	"addrmemo/internal/config"
	"addrmemo/internal/dialog"
	"addrmemo/internal/hotkey/oshook"
	"addrmemo/internal/i18n"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := config.Default()
	var modifier, key string

	cmd := &cobra.Command{
		Use:     "addrmemo",
		Short:   "Show what a selected crypto address is",
		Version: Version,
		Long: `addrmemo runs in the system tray and watches for a hotkey.
When the hotkey is pressed it copies the selected text, looks it up
in the address file and shows the label, chain and description
as a desktop notification.

The address file is a JSON (or YAML) list:
  [{"address": "0x...", "label": "Treasury", "chain": "Ethereum", "description": "Main multisig"}]

It is reloaded automatically when it changes.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := config.ParseModifier(modifier)
			if err != nil {
				return err
			}
			k, err := config.ParseKey(key)
			if err != nil {
				return err
			}
			opts.Hotkey = config.HotkeyConfig{Modifier: mod, Key: k}
			if err := opts.Validate(); err != nil {
				return err
			}

			log.Printf("AddrMemo %s запускается...", Version)

			// Запускаем в главном потоке (требование для macOS и некоторых GUI)
			oshook.RunOnMainThread(func() { run(opts) })
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Path, "config", "c", opts.Path, "address file (.json, .yaml, .yml)")
	flags.StringVar(&modifier, "modifier", string(opts.Hotkey.Modifier), fmt.Sprintf("hotkey modifier %v", config.AvailableModifiers()))
	flags.StringVar(&key, "key", string(opts.Hotkey.Key), "hotkey trigger key (a-z, f1-f12)")
	flags.DurationVar(&opts.SettleDelay, "settle", opts.SettleDelay, "wait after the copy keystroke before reading the clipboard")
	flags.StringVar(&opts.UILanguage, "lang", opts.UILanguage, fmt.Sprintf("interface language %v", i18n.AvailableLanguages()))
	flags.BoolVar(&opts.Notifications, "notifications", opts.Notifications, "start with desktop notifications enabled")

	return cmd
}

func run(opts config.Options) {
	application, err := app.New(opts)
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		if errors.Is(err, app.ErrStartupConfig) {
			dialog.ShowError(i18n.T("error_startup_title"), err.Error())
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Println("Получен сигнал завершения")
		application.Close()
	}()

	log.Printf("Приложение запущено. Нажмите %s для поиска адреса.", opts.Hotkey)
	started := time.Now()
	application.Run()
	log.Printf("Приложение завершено, работало %s", time.Since(started).Round(time.Second))
}
