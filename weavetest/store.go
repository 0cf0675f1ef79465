package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data. Use it instead of MemStore when the test needs
// the same storage the node is using.
func CommitKVStore(t testing.TB) (db piggybank.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "weavetest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	commit, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot create commit store: %s", err)
	}
	return commit, func() { os.RemoveAll(dbpath) }
}
