package usecase_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/codexlabs/unroller/pkg/domain/mock"
	"github.com/codexlabs/unroller/pkg/domain/model"
	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/codexlabs/unroller/pkg/infra"
	"github.com/codexlabs/unroller/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func newTestUseCase(cloner *mock.ClonerMock) *usecase.UseCase {
	options := []infra.Option{}
	if cloner != nil {
		options = append(options, infra.WithCloner(cloner))
	}
	return usecase.New(infra.New(options...), model.DefaultPolicy())
}

func uploadInput(name string, data []byte) *model.IngestInput {
	return &model.IngestInput{
		Archive: &model.ArchiveUpload{
			FileName: name,
			Reader:   bytes.NewReader(data),
		},
	}
}

func TestIngestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("end-to-end zip upload", func(t *testing.T) {
		data := buildZip(t, []zipEntry{
			{name: "src/main.txt", body: "hello"},
			{name: "node_modules/x.txt", body: "skip me"},
		})

		uc := newTestUseCase(nil)
		output := gt.R1(uc.Ingest(ctx, uploadInput("repo.zip", data))).NoError(t)

		gt.V(t, len(output.Files)).Equal(1)
		gt.V(t, output.Files[0].Path).Equal("src/main.txt")
		gt.V(t, output.Files[0].Size).Equal(int64(5))
		gt.V(t, output.Files[0].Omitted).Equal(false)
		gt.V(t, *output.Files[0].Content).Equal("hello")

		gt.V(t, len(output.Tree)).Equal(1)
		gt.V(t, output.Tree[0].Name).Equal("src")
	})

	t.Run("zip with symlink member is rejected wholesale", func(t *testing.T) {
		data := buildZip(t, []zipEntry{
			{name: "src/main.txt", body: "hello"},
			{name: "link", body: "main.txt", symlink: true},
		})

		uc := newTestUseCase(nil)
		_, err := uc.Ingest(ctx, uploadInput("repo.zip", data))
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagArchiveRejected)).Equal(true)
	})

	t.Run("non-zip filename rejected", func(t *testing.T) {
		uc := newTestUseCase(nil)
		_, err := uc.Ingest(ctx, uploadInput("repo.tar.gz", []byte("whatever")))
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagInvalidInput)).Equal(true)
	})

	t.Run("corrupt zip rejected", func(t *testing.T) {
		uc := newTestUseCase(nil)
		_, err := uc.Ingest(ctx, uploadInput("repo.zip", []byte("this is not a zip")))
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagArchiveRejected)).Equal(true)
	})

	t.Run("stream above archive ceiling aborts with payload too large", func(t *testing.T) {
		policy := model.DefaultPolicy()
		policy.MaxArchiveBytes = 128

		uc := usecase.New(infra.New(), policy)
		data := bytes.Repeat([]byte{'x'}, 1024)

		_, err := uc.Ingest(ctx, uploadInput("repo.zip", data))
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagPayloadTooLarge)).Equal(true)
	})

	t.Run("neither source rejected before any work", func(t *testing.T) {
		uc := newTestUseCase(nil)
		_, err := uc.Ingest(ctx, &model.IngestInput{})
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagInvalidInput)).Equal(true)
	})
}

func TestIngestClone(t *testing.T) {
	ctx := context.Background()
	repoURL := gt.R1(model.ParseRepoURL("https://github.com/octocat/hello-world", []string{"github.com"})).NoError(t)

	t.Run("clone strategy collects cloned files", func(t *testing.T) {
		cloner := &mock.ClonerMock{
			CloneFunc: func(ctx context.Context, repo *model.RepoURL, dst string) error {
				gt.V(t, repo.CloneURL()).Equal("https://github.com/octocat/hello-world.git")
				writeFile(t, dst, "README.md", []byte("# hello"))
				return nil
			},
		}

		uc := newTestUseCase(cloner)
		output := gt.R1(uc.Ingest(ctx, &model.IngestInput{RepoURL: repoURL})).NoError(t)

		gt.V(t, len(cloner.CloneCalls())).Equal(1)
		gt.V(t, len(output.Files)).Equal(1)
		gt.V(t, output.Files[0].Path).Equal("README.md")

		// Clone destination must live inside the scratch workspace
		gt.V(t, strings.Contains(cloner.CloneCalls()[0].Dst, "unroller.")).Equal(true)
	})

	t.Run("clone failure propagates", func(t *testing.T) {
		cloner := &mock.ClonerMock{
			CloneFunc: func(ctx context.Context, repo *model.RepoURL, dst string) error {
				return goerr.New("fatal: repository not found", goerr.T(types.TagAcquisitionFailed))
			},
		}

		uc := newTestUseCase(cloner)
		_, err := uc.Ingest(ctx, &model.IngestInput{RepoURL: repoURL})
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagAcquisitionFailed)).Equal(true)
	})

	t.Run("clone context carries the wall-clock budget", func(t *testing.T) {
		cloner := &mock.ClonerMock{
			CloneFunc: func(ctx context.Context, repo *model.RepoURL, dst string) error {
				_, hasDeadline := ctx.Deadline()
				gt.V(t, hasDeadline).Equal(true)
				return nil
			},
		}

		uc := newTestUseCase(cloner)
		_ = gt.R1(uc.Ingest(ctx, &model.IngestInput{RepoURL: repoURL})).NoError(t)
	})
}

func TestIngestWorkspaceLifecycle(t *testing.T) {
	ctx := context.Background()

	countWorkspaces := func(t *testing.T, dir string) int {
		t.Helper()
		matches := gt.R1(filepath.Glob(filepath.Join(dir, "unroller.*"))).NoError(t)
		return len(matches)
	}

	t.Run("workspace removed after success", func(t *testing.T) {
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)

		data := buildZip(t, []zipEntry{{name: "a.txt", body: "a"}})
		uc := newTestUseCase(nil)
		_ = gt.R1(uc.Ingest(ctx, uploadInput("repo.zip", data))).NoError(t)

		gt.V(t, countWorkspaces(t, tmp)).Equal(0)
	})

	t.Run("workspace removed after rejection", func(t *testing.T) {
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)

		uc := newTestUseCase(nil)
		_, err := uc.Ingest(ctx, uploadInput("repo.zip", []byte("corrupt")))
		gt.Error(t, err)

		gt.V(t, countWorkspaces(t, tmp)).Equal(0)
	})
}

func TestIngestConcurrentIsolation(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(nil)

	zipA := buildZip(t, []zipEntry{{name: "a.txt", body: "content A"}})
	zipB := buildZip(t, []zipEntry{{name: "b.txt", body: "content B"}})

	var wg sync.WaitGroup
	var outA, outB *model.IngestOutput
	var errA, errB error

	wg.Add(2)
	go func() {
		defer wg.Done()
		outA, errA = uc.Ingest(ctx, uploadInput("a.zip", zipA))
	}()
	go func() {
		defer wg.Done()
		outB, errB = uc.Ingest(ctx, uploadInput("b.zip", zipB))
	}()
	wg.Wait()

	gt.NoError(t, errA)
	gt.NoError(t, errB)

	gt.V(t, len(outA.Files)).Equal(1)
	gt.V(t, outA.Files[0].Path).Equal("a.txt")
	gt.V(t, *outA.Files[0].Content).Equal("content A")

	gt.V(t, len(outB.Files)).Equal(1)
	gt.V(t, outB.Files[0].Path).Equal("b.txt")
	gt.V(t, *outB.Files[0].Content).Equal("content B")
}

func TestStreamToFile(t *testing.T) {
	t.Run("writes within limit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.bin")
		gt.NoError(t, usecase.StreamToFileForTest(strings.NewReader("hello"), path, 16))

		body := gt.R1(os.ReadFile(path)).NoError(t)
		gt.V(t, string(body)).Equal("hello")
	})

	t.Run("aborts once the running total crosses the limit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.bin")
		err := usecase.StreamToFileForTest(strings.NewReader(strings.Repeat("x", 64)), path, 16)
		gt.Error(t, err)
		gt.V(t, goerr.HasTag(err, types.TagPayloadTooLarge)).Equal(true)
	})
}
