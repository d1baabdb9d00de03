package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teazrq/springer-surv/dataset"
	"github.com/teazrq/springer-surv/dataset/mongodataset"
	"github.com/teazrq/springer-surv/dataset/sqldataset"
	"github.com/teazrq/springer-surv/dataset/sqldataset/pgadapter"
	"github.com/teazrq/springer-surv/dataset/sqldataset/sqlite3adapter"
	"github.com/teazrq/springer-surv/feature"
	mgo "gopkg.in/mgo.v2"
)

type inputConfig struct {
	*rootCmdConfig
	dataInput   string
	timeColumn  string
	eventColumn string
	mongoDB     string
	maxDBConns  int
}

func declareInputFlags(cmd *cobra.Command, ic *inputConfig) {
	cmd.PersistentFlags().StringVarP(&(ic.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the observations to analyze (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(ic.timeColumn), "time-column", "time", "name of the column or document field holding the observed times")
	cmd.PersistentFlags().StringVar(&(ic.eventColumn), "event-column", "event", "name of the column or document field holding the event indicators")
	cmd.PersistentFlags().StringVar(&(ic.mongoDB), "mongo-db", "springersurv", "name of the MongoDB database holding the observations collection")
	cmd.PersistentFlags().IntVar(&(ic.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

func (ic *inputConfig) observations(ctx context.Context) (*dataset.Observations, error) {
	if strings.HasPrefix(ic.dataInput, "postgresql://") {
		return ic.postgreSQLObservations(ctx)
	}
	if strings.HasPrefix(ic.dataInput, "mongodb://") {
		return ic.mongoDBObservations(ctx)
	}
	if strings.HasSuffix(ic.dataInput, ".db") {
		return ic.sqlite3Observations(ctx)
	}
	if ic.dataInput == "" {
		ic.Logf("Reading observations from STDIN...")
	} else {
		ic.Logf("Opening %s to read observations...", ic.dataInput)
	}
	return dataset.ReadCSVFromFilePath(ic.dataInput, ic.outcome())
}

func (ic *inputConfig) outcome() feature.Outcome {
	return feature.NewOutcome(ic.timeColumn, ic.eventColumn)
}

func (ic *inputConfig) sqlite3Observations(ctx context.Context) (*dataset.Observations, error) {
	ic.Logf("Creating SQLite3 adapter for file %s to read observations...", ic.dataInput)
	adapter, err := sqlite3adapter.New(ic.dataInput, ic.maxDBConns)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()
	ic.Logf("Reading observations over SQLite3 adapter for file %s...", ic.dataInput)
	return sqldataset.Read(ctx, adapter, ic.timeColumn, ic.eventColumn)
}

func (ic *inputConfig) postgreSQLObservations(ctx context.Context) (*dataset.Observations, error) {
	ic.Logf("Creating PostgreSQL adapter for url %s to read observations...", ic.dataInput)
	adapter, err := pgadapter.New(ic.dataInput)
	if err != nil {
		return nil, err
	}
	defer adapter.Close()
	ic.Logf("Reading observations over PostgreSQL adapter for url %s...", ic.dataInput)
	return sqldataset.Read(ctx, adapter, ic.timeColumn, ic.eventColumn)
}

func (ic *inputConfig) mongoDBObservations(ctx context.Context) (*dataset.Observations, error) {
	ic.Logf("Dialing MongoDB at %s to read observations...", ic.dataInput)
	session, err := mgo.Dial(ic.dataInput)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb at %s: %v", ic.dataInput, err)
	}
	defer session.Close()
	ic.Logf("Reading observations from MongoDB database %s...", ic.mongoDB)
	return mongodataset.Read(ctx, session, ic.mongoDB, ic.timeColumn, ic.eventColumn)
}
