package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ardanlabs/conf/v3"

	"github.com/illyasch/taskpool/pool"
)

const (
	configPrefix = "AGO"
)

type config struct {
	conf.Version
	Workers int `conf:"default:4"`
	Tasks   int `conf:"default:2048"`
}

func main() {
	l := log.New(os.Stderr, configPrefix+": ", log.LstdFlags)

	if err := run(l); err != nil {
		l.Fatal("startup", "ERROR", err)
	}
}

func run(logger *log.Logger) error {
	cfg := config{
		Version: conf.Version{
			Desc: "Copyright Ilya Scheblanov",
		},
	}

	help, err := conf.Parse(configPrefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	workers, err := pool.New(cfg.Workers, pool.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("starting pool: %w", err)
	}
	defer workers.Stop()

	if err := dispatch(workers, os.Stdout, cfg.Tasks); err != nil {
		return err
	}
	workers.Wait()

	fmt.Println("after wait.")
	return nil
}

// dispatch submits n numbered tasks, each printing its number to out.
func dispatch(workers *pool.Pool, out io.Writer, n int) error {
	var mu sync.Mutex

	for i := 1; i <= n; i++ {
		num := i
		err := workers.Submit(func() {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(out, "Worker #%d\n", num)
		})
		if err != nil {
			return fmt.Errorf("submitting task %d: %w", num, err)
		}
	}

	return nil
}
