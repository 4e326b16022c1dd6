package main

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illyasch/taskpool/pool"
)

func Test_dispatch(t *testing.T) {
	t.Run("Every task prints once", func(t *testing.T) {
		const total = 2048

		workers, err := pool.New(4)
		require.NoError(t, err)
		defer workers.Stop()

		var out bytes.Buffer
		require.NoError(t, dispatch(workers, &out, total))
		workers.Wait()

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, total)

		want := make([]string, 0, total)
		for i := 1; i <= total; i++ {
			want = append(want, fmt.Sprintf("Worker #%d", i))
		}
		sort.Strings(want)
		sort.Strings(lines)
		assert.Equal(t, want, lines)
	})

	t.Run("Stopped pool", func(t *testing.T) {
		workers, err := pool.New(1)
		require.NoError(t, err)
		workers.Stop()

		err = dispatch(workers, &bytes.Buffer{}, 3)
		assert.ErrorIs(t, err, pool.ErrStopped)
	})
}
