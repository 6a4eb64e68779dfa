package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roach88/breakledger/internal/codec"
	"github.com/roach88/breakledger/internal/config"
	"github.com/roach88/breakledger/internal/configfile"
	"github.com/roach88/breakledger/internal/history"
	"github.com/roach88/breakledger/internal/value"
)

// RevisionInfo reports the revision a mutating command recorded.
type RevisionInfo struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	Hash     string `json:"hash"`
	Recorded bool   `json:"recorded"` // false when the document was unchanged
}

// loadConfig loads path and reports failures through f.
func loadConfig(f *OutputFormatter, path string) (config.Document, error) {
	doc, err := configfile.Load(path)
	if err != nil {
		var de *codec.DecodeError
		switch {
		case errors.Is(err, codec.ErrUnsupportedFormat):
			return config.Document{}, f.Fail(ExitCommandError, ErrCodeUnsupported, err)
		case errors.As(err, &de):
			return config.Document{}, f.Fail(ExitCommandError, ErrCodeDecodeFailed, err)
		default:
			return config.Document{}, f.Fail(ExitCommandError, ErrCodeGeneric, err)
		}
	}
	f.VerboseLog("Loaded %s", path)
	return doc, nil
}

// saveConfig writes doc to path and reports failures through f.
func saveConfig(f *OutputFormatter, path string, doc config.Document) error {
	if err := configfile.Save(path, doc); err != nil {
		if errors.Is(err, codec.ErrUnsupportedFormat) {
			return f.Fail(ExitCommandError, ErrCodeUnsupported, err)
		}
		return f.Fail(ExitCommandError, ErrCodeWriteFailed, err)
	}
	f.VerboseLog("Wrote %s", path)
	return nil
}

// recordRevision appends doc to the revision log when --history is set.
// It returns nil info when recording is disabled.
func recordRevision(ctx context.Context, opts *RootOptions, f *OutputFormatter, path string, op history.Operation, doc config.Document) (*RevisionInfo, error) {
	if opts.History == "" {
		return nil, nil
	}

	store, err := history.Open(opts.History)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeHistory, err)
	}
	defer store.Close()

	rev, created, err := store.Record(ctx, historyKey(path), op, doc)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeHistory, err)
	}
	f.VerboseLog("Revision %d of %s (%s)", rev.Seq, path, rev.ID)
	return &RevisionInfo{ID: rev.ID, Seq: rev.Seq, Hash: rev.DocumentHash, Recorded: created}, nil
}

// historyKey identifies a config file in the revision log.
func historyKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func parseGNV(f *OutputFormatter, s string) (config.GroupNameVersion, error) {
	gnv, err := config.ParseGroupNameVersion(s)
	if err != nil {
		return config.GroupNameVersion{}, f.Fail(ExitCommandError, ErrCodeInvalidArgs, err)
	}
	return gnv, nil
}

func parseGAN(f *OutputFormatter, s string) (config.GroupAndName, error) {
	gan, err := config.ParseGroupAndName(s)
	if err != nil {
		return config.GroupAndName{}, f.Fail(ExitCommandError, ErrCodeInvalidArgs, err)
	}
	return gan, nil
}

// parseBreak reads a --break value. Two forms are accepted:
//
//	code=java.class.removed,old=class com.x.Old,new=
//	{"code": "java.class.removed", "old": "class com.x.Old", "new": null}
//
// In the key=value form an empty value is recorded as null.
func parseBreak(input string) (config.AcceptedBreak, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return config.AcceptedBreak{}, errors.New("empty break descriptor")
	}

	if strings.HasPrefix(input, "{") {
		parsed, err := value.ParseJSON([]byte(input))
		if err != nil {
			return config.AcceptedBreak{}, fmt.Errorf("break descriptor: %w", err)
		}
		obj, ok := parsed.(value.Object)
		if !ok {
			return config.AcceptedBreak{}, errors.New("break descriptor must be an object")
		}
		return config.NewAcceptedBreak(obj)
	}

	obj := value.Object{}
	for _, part := range strings.Split(input, ",") {
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return config.AcceptedBreak{}, fmt.Errorf("break descriptor %q: expected key=value pairs", input)
		}
		if _, dup := obj[k]; dup {
			return config.AcceptedBreak{}, fmt.Errorf("break descriptor %q: duplicate key %q", input, k)
		}
		if v == "" {
			obj[k] = value.Null{}
		} else {
			obj[k] = value.String(v)
		}
	}
	return config.NewAcceptedBreak(obj)
}
