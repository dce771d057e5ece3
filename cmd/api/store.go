package main

import (
	"context"
	"os"

	"servicios_locales/internal/adapter/persistence/repository"
	"servicios_locales/internal/adapter/persistence/sqlstore"
	"servicios_locales/internal/config"
	"servicios_locales/internal/infrastructure/database"
	"servicios_locales/internal/infrastructure/fixtures"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables of the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)

			switch cfg.Storage.Driver {
			case config.StorageSQLite:
				db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
				if err != nil {
					return err
				}
				defer db.Close()
				version, err := database.MigrateSQLite(ctx, db)
				if err != nil {
					return err
				}
				tw.AppendHeader(table.Row{"Store", "Path", "Schema version"})
				tw.AppendRow(table.Row{cfg.Storage.Driver, cfg.Storage.SQLitePath, version})
			default:
				ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
				if err != nil {
					return err
				}
				created, err := database.CreateTables(ctx, ddb, cfg.DynamoDB)
				if err != nil {
					return err
				}
				tw.AppendHeader(table.Row{"Table", "Status"})
				for _, def := range database.TableDefinitions(cfg.DynamoDB) {
					status := "exists"
					for _, name := range created {
						if name == *def.TableName {
							status = "created"
						}
					}
					tw.AppendRow(table.Row{*def.TableName, status})
				}
			}
			tw.Render()
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load services and users from a YAML fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := fixtures.Load(file)
			if err != nil {
				return err
			}
			res, err := applyFixtures(ctx, f)
			if err != nil {
				return err
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Store", "Users", "Services"})
			tw.AppendRow(table.Row{cfg.Storage.Driver, res.Users, res.Services})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "fixture file")
	return cmd
}

func applyFixtures(ctx context.Context, f fixtures.File) (fixtures.Result, error) {
	if cfg.Storage.Driver == config.StorageSQLite {
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return fixtures.Result{}, err
		}
		defer db.Close()
		if _, err := database.MigrateSQLite(ctx, db); err != nil {
			return fixtures.Result{}, err
		}
		return fixtures.Apply(ctx, f, sqlstore.NewServiceListingRepository(db), sqlstore.NewUserRepository(db))
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return fixtures.Result{}, err
	}
	return fixtures.Apply(ctx, f,
		repository.NewServiceListingDynamoRepository(ddb, cfg.DynamoDB),
		repository.NewUserDynamoRepository(ddb, cfg.DynamoDB))
}
