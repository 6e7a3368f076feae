package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kansasdcf/legacyrec/store"
)

func newStoreCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Keep record images in a local bbolt file",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "records.db", "record store file")

	open := func(opts ...store.Option) (*store.Store, error) {
		return store.Open(dbPath, append(opts, store.WithLogger(a.logger))...)
	}

	var compression string
	put := &cobra.Command{
		Use:   "put NAME FILE",
		Short: "Store the bytes of FILE as record NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := parseCompression(compression)
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			s, err := open(store.WithCompression(ct))
			if err != nil {
				return err
			}
			defer s.Close()

			return s.PutBytes(args[0], raw)
		},
	}
	put.Flags().StringVar(&compression, "compression", "zstd", "payload compression: none, zstd, s2 or lz4")

	var out string
	get := &cobra.Command{
		Use:   "get NAME",
		Short: "Write the bytes of record NAME to --out or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			rb, err := s.Get(args[0])
			if err != nil {
				return err
			}
			if out != "" {
				return os.WriteFile(out, rb.Bytes(), 0o644)
			}
			_, err = cmd.OutOrStdout().Write(rb.Bytes())

			return err
		},
	}
	get.Flags().StringVarP(&out, "out", "o", "", "output file")

	list := &cobra.Command{
		Use:   "ls",
		Short: "List stored records with their image headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.Names()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLENGTH\tCOMPRESSION\tCHECKSUM")
			for _, name := range names {
				h, err := s.Header(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%016x\n", name, h.RawLength, h.Compression, h.Checksum)
			}

			return w.Flush()
		},
	}

	remove := &cobra.Command{
		Use:   "rm NAME",
		Short: "Delete record NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()

			return s.Delete(args[0])
		},
	}

	cmd.AddCommand(put, get, list, remove)

	return cmd
}
