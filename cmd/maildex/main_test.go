package main

import (
	"testing"

	"github.com/poiesic/maildex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSearchCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "maildex",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Value:   "./maildex_db",
					},
					&cli.StringFlag{
						Name:     "mail",
						Aliases:  []string{"m"},
						Required: true,
					},
				},
			},
		},
	}

	t.Run("mail is required", func(t *testing.T) {
		err := app.Run([]string{"maildex", "search", "invoice"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mail")
	})

	t.Run("db has a default value", func(t *testing.T) {
		cmd := app.Commands[0]
		var dbFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "db" {
				dbFlag = f
				break
			}
		}
		require.NotNil(t, dbFlag)
		assert.Equal(t, "./maildex_db", dbFlag.Value)
	})

	t.Run("empty query fails", func(t *testing.T) {
		err := app.Run([]string{"maildex", "search", "--mail", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})
}

func TestClassifyCommand(t *testing.T) {
	app := &cli.App{
		Name: "maildex",
		Commands: []*cli.Command{
			{
				Name:   "classify",
				Action: classifyCommand,
			},
		},
	}

	t.Run("empty query fails", func(t *testing.T) {
		err := app.Run([]string{"maildex", "classify"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("classifies a query", func(t *testing.T) {
		err := app.Run([]string{"maildex", "classify", "contact", "john@example.com"})
		require.NoError(t, err)
	})
}

func TestSimilarCommand(t *testing.T) {
	app := &cli.App{
		Name: "maildex",
		Commands: []*cli.Command{
			{
				Name:   "similar",
				Action: similarCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "mail",
						Required: true,
					},
				},
			},
		},
	}

	t.Run("missing message-id fails", func(t *testing.T) {
		err := app.Run([]string{"maildex", "similar", "--mail", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "message-id")
	})

	t.Run("unknown message-id fails", func(t *testing.T) {
		err := app.Run([]string{"maildex", "similar", "--mail", t.TempDir(), "missing"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		err := newApp().Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestFieldNames(t *testing.T) {
	assert.Equal(t, "{}", fieldNames(nil))
	assert.Equal(t, "{subject,body}", fieldNames([]core.Field{core.FieldSubject, core.FieldBody}))
}
