package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"das_notify/internal/adapters/das"
	"das_notify/internal/adapters/files"
	"das_notify/internal/adapters/observability"
	"das_notify/internal/app"
	"das_notify/internal/domain"
	"das_notify/internal/shared"
)

type runOptions struct {
	values map[string]*string
}

// addParamFlags declares one flag per script parameter, defaulted from the schema.
func addParamFlags(cmd *cobra.Command, opts *runOptions) {
	opts.values = map[string]*string{}
	for _, p := range domain.Describe().Input {
		v := new(string)
		cmd.Flags().StringVar(v, flagName(p.ID), p.DefaultValue, p.Description)
		opts.values[p.ID] = v
	}
}

func (o *runOptions) params() domain.Params {
	m := make(map[string]string, len(o.values))
	for id, v := range o.values {
		m[id] = *v
	}
	return domain.ParamsFromValues(m)
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Send one push notification for the first client in the input file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd, opts)
		},
	}
	addParamFlags(cmd, opts)
	return cmd
}

func runOnce(cmd *cobra.Command, opts *runOptions) error {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	p := opts.params()
	if err := p.Validate(); err != nil {
		return err
	}
	u, err := das.ResolveConnector(cfg.DASBaseURL, p.Connector)
	if err != nil {
		return err
	}
	p.Connector = u

	d := app.NewDispatcher(
		files.New(cfg.DataDir),
		das.New(cfg.DASKey, cfg.DASTimeout, cfg.DASRPS),
		log.Logger,
	)
	res, err := d.Execute(cmd.Context(), p)
	if err != nil {
		log.Error().Err(err).Str("document_id", p.DocumentID).Msg("push notification failed")
		return fmt.Errorf("send notification: %w", err)
	}
	log.Info().
		Str("invocation_id", res.InvocationID).
		Str("client_id", res.ClientID).
		Msg("run completed")
	return nil
}
