//go:build unix

package cli_test

import (
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/auditai/pkg/domain/model"
)

func TestUploadInterruptedBySignal(t *testing.T) {
	srv, baseURL := newAuditServer(t)
	srv.onPost = func(string) {
		if srv.posts[model.EndpointTransaction] == 1 {
			gt.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
			// give the signal time to cancel the command context
			time.Sleep(200 * time.Millisecond)
		}
	}

	csvPath := writeFile(t, "tx.csv", strings.Join([]string{
		"cliente,valor_transacao,data,status",
		"Acme,10,2024-03-01,Aprovado",
		"Beta,20,2024-03-02,Pendente",
		"Gama,30,2024-03-03,Pendente",
	}, "\n"))

	out, err := runCLI(t, baseURL, "upload", "--kind", "transaction", csvPath)
	gt.NoError(t, err).Required()

	gt.String(t, out).Contains("transaction: 1 succeeded, 0 failed, 2 skipped (interrupted)")
	gt.Value(t, srv.postCount(model.EndpointTransaction)).Equal(1)
}
