package location

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jonwraymond/rentdata/api"
	"github.com/jonwraymond/rentdata/auth"
	"github.com/jonwraymond/rentdata/query"
)

func TestAPISource_Directory(t *testing.T) {
	var gotReq api.Request
	var gotMode auth.Mode
	exec := api.ExecutorFunc(func(_ context.Context, req api.Request, mode auth.Mode) (*api.Response, error) {
		gotReq, gotMode = req, mode
		return &api.Response{Data: json.RawMessage(`{"locations":[
			{"region":"Dar-Es-Salaam","districts":["Ilala","Kinondoni"]},
			{"region":"Arusha","districts":["Meru"]}
		]}`)}, nil
	})
	queries, err := query.New(query.Config{
		Executor: exec,
		Prober:   auth.ProberFunc(func(context.Context) bool { return true }),
	})
	if err != nil {
		t.Fatal(err)
	}
	src, err := NewAPISource(queries)
	if err != nil {
		t.Fatal(err)
	}

	dir, err := src.Directory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if gotReq.Operation != Operation || gotMode != auth.ModePublic {
		t.Errorf("request = %q mode %s, want %q public", gotReq.Operation, gotMode, Operation)
	}
	if len(dir) != 2 || len(dir["Dar-Es-Salaam"]) != 2 || dir["Arusha"][0] != "Meru" {
		t.Errorf("Directory() = %v", dir)
	}
}

func TestAPISource_EmptyIsError(t *testing.T) {
	exec := api.ExecutorFunc(func(context.Context, api.Request, auth.Mode) (*api.Response, error) {
		return &api.Response{Data: json.RawMessage(`{"locations":[]}`)}, nil
	})
	queries, _ := query.New(query.Config{Executor: exec})
	src, _ := NewAPISource(queries)
	if _, err := src.Directory(context.Background()); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestNewAPISource_NilCache(t *testing.T) {
	if _, err := NewAPISource(nil); !errors.Is(err, ErrNilQueryCache) {
		t.Errorf("error = %v, want ErrNilQueryCache", err)
	}
}

func TestStaticSource_Directory(t *testing.T) {
	dir, err := NewStaticSource(nil).Directory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(dir["Dar es Salaam"]) == 0 {
		t.Errorf("static directory missing Dar es Salaam: %v", dir.Regions())
	}
}
