package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/d21d3q/ctsensor/internal/options"
	"github.com/d21d3q/ctsensor/pkg/ctsensor"
)

type decodeFlags struct {
	payload string
	decoder string
	format  string
}

func newDecodeCmd() *cobra.Command {
	var flags decodeFlags
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decodes the provided payload",
		Long: "Decodes a base64 payload. The decoder is picked from the message type byte unless --decoder is given.\n" +
			"Without --payload, one payload per line is read from stdin.",
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := options.ParseDecoderName(flags.decoder)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctsensor.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			opts := ctsensor.DecodeOptions{Decoder: flags.decoder}
			if flags.payload == "" {
				return runInteractive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts, format)
			}
			return runDecode(cmd.Context(), cmd.OutOrStdout(), opts, format, flags.payload)
		},
	}
	cmd.Flags().StringVar(&flags.payload, "payload", "", "the base64 payload to be decoded")
	cmd.Flags().StringVar(&flags.decoder, "decoder", "", "decoder to use for the payload ("+strings.Join(ctsensor.DecoderNames(), ", ")+")")
	cmd.Flags().StringVar(&flags.format, "format", string(ctsensor.FormatJSON), "output format (json, cbor)")
	_ = cmd.RegisterFlagCompletionFunc("decoder", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ctsensor.DecoderNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runInteractive(ctx context.Context, in io.Reader, out io.Writer, opts ctsensor.DecodeOptions, format ctsensor.Format) error {
	scanner := bufio.NewScanner(in)
	logrus.Info("ctsensor decode mode. Paste a base64 payload and press Enter (Ctrl+D to exit).")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runDecode(ctx, out, opts, format, line); err != nil {
			logrus.WithError(err).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

func runDecode(ctx context.Context, out io.Writer, opts ctsensor.DecodeOptions, format ctsensor.Format, payload string) error {
	result, err := ctsensor.DecodeBase64(ctx, payload, opts)
	if err != nil {
		return err
	}
	text, err := result.Text(format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}
