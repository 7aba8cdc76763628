package attrtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/hpkg/attribute"
	"github.com/arloliu/hpkg/errs"
	"github.com/arloliu/hpkg/format"
	"github.com/arloliu/hpkg/handler"
	"github.com/arloliu/hpkg/heap"
	"github.com/arloliu/hpkg/internal/streamtest"
	"github.com/arloliu/hpkg/packageinfo"
	"github.com/arloliu/hpkg/section"
)

// recorder logs every call it receives. Children share the log.
type recorder struct {
	name string
	log  *[]string
	// failOn makes HandleAttribute fail for the id.
	failOn attribute.ID
	fail   bool
	// noChild declines to create child handlers.
	noChild bool
}

func newRecorder() *recorder {
	return &recorder{name: "root", log: &[]string{}}
}

func (r *recorder) HandleAttribute(_ *handler.Context, id attribute.ID, value attribute.Value, childRequested bool) (handler.Handler, error) {
	*r.log = append(*r.log, "attr "+r.name+" "+id.String()+"="+value.String)
	if r.fail && id == r.failOn {
		return nil, errs.Structuralf("injected failure at %s", id)
	}
	if !childRequested || r.noChild {
		return nil, nil
	}

	return &recorder{name: r.name + "/" + value.String, log: r.log, failOn: r.failOn, fail: r.fail}, nil
}

func (r *recorder) NotifyDone(_ *handler.Context) error {
	*r.log = append(*r.log, "done "+r.name)
	return nil
}

func (r *recorder) Delete(_ *handler.Context) {
	*r.log = append(*r.log, "delete "+r.name)
}

// countingSink counts error notifications on top of collecting records.
type countingSink struct {
	packageinfo.Collector
	errors int
}

func (s *countingSink) HandleErrorOccurred() {
	s.errors++
	s.Collector.HandleErrorOccurred()
}

func prepare(t *testing.T, stream streamtest.Stream) *section.Section {
	t.Helper()

	size := uint64(len(stream.Data))
	sec, err := section.New("package attributes", size, size, 0, stream.StringsLength, stream.StringsCount)
	require.NoError(t, err)
	require.NoError(t, sec.Prepare(heap.BytesReader(stream.Data)))

	return sec
}

func parse(t *testing.T, ctx *handler.Context, stream streamtest.Stream, root handler.Handler) error {
	t.Helper()
	return Parse(ctx, prepare(t, stream), root)
}

func endToEndStream() streamtest.Stream {
	b := streamtest.New()
	b.String(attribute.IDPackageName, "demo")
	b.Begin(attribute.IDPackageVersionMajor, attribute.StringValue("1"))
	b.String(attribute.IDPackageVersionMinor, "0")
	b.End()
	b.End()

	return b.Build()
}

func TestParse_EndToEnd(t *testing.T) {
	sink := &countingSink{}
	ctx := &handler.Context{ContentHandler: sink}
	sec := prepare(t, endToEndStream())

	require.NoError(t, Parse(ctx, sec, handler.NewPackageHandler()))
	require.Zero(t, sec.Remaining())
	require.Zero(t, sink.errors)

	require.Len(t, sink.Records, 2)
	require.Equal(t, packageinfo.AttributeName, sink.Records[0].ID)
	require.Equal(t, "demo", sink.Records[0].String)
	require.Equal(t, packageinfo.AttributeVersion, sink.Records[1].ID)
	require.Equal(t, packageinfo.Version{Major: "1", Minor: "0"}, sink.Records[1].Version)
}

func TestParse_PostorderClosure(t *testing.T) {
	b := streamtest.New()
	b.Begin(attribute.IDPackageUser, attribute.StringValue("a"))
	b.Begin(attribute.IDPackageUser, attribute.StringValue("b"))
	b.String(attribute.IDPackageUserGroup, "c")
	b.End()
	b.String(attribute.IDPackageUserGroup, "d")
	b.End()
	b.String(attribute.IDPackageName, "e")
	b.End()

	root := newRecorder()
	require.NoError(t, parse(t, &handler.Context{}, b.Build(), root))

	require.Equal(t, []string{
		"attr root package:user=a",
		"attr root/a package:user=b",
		"attr root/a/b package:user.group=c",
		"done root/a/b",
		"delete root/a/b",
		"attr root/a package:user.group=d",
		"done root/a",
		"delete root/a",
		"attr root package:name=e",
		"done root",
	}, *root.log)
}

func TestParse_NilChildIsIgnored(t *testing.T) {
	b := streamtest.New()
	b.Begin(attribute.IDPackageUser, attribute.StringValue("a"))
	b.Begin(attribute.IDPackageUser, attribute.StringValue("b"))
	b.End()
	b.String(attribute.IDPackageUserGroup, "c")
	b.End()
	b.String(attribute.IDPackageName, "d")
	b.End()

	root := newRecorder()
	root.noChild = true
	require.NoError(t, parse(t, &handler.Context{}, b.Build(), root))

	require.Equal(t, []string{
		"attr root package:user=a",
		"attr root package:name=d",
		"done root",
	}, *root.log)
}

func TestParse_ErrorUnwindsLIFO(t *testing.T) {
	b := streamtest.New()
	b.Begin(attribute.IDPackageUser, attribute.StringValue("a"))
	b.Begin(attribute.IDPackageUser, attribute.StringValue("b"))
	b.String(attribute.IDPackageName, "boom")
	b.End()
	b.End()
	b.End()

	root := newRecorder()
	root.failOn = attribute.IDPackageName
	root.fail = true
	sink := &countingSink{}

	err := parse(t, &handler.Context{ContentHandler: sink}, b.Build(), root)
	require.ErrorIs(t, err, errs.ErrStructural)
	require.Equal(t, 1, sink.errors)
	require.True(t, sink.Failed)

	require.Equal(t, []string{
		"attr root package:user=a",
		"attr root/a package:user=b",
		"attr root/a/b package:name=boom",
		"delete root/a/b",
		"delete root/a",
	}, *root.log)
}

func TestParse_TruncationAlwaysFails(t *testing.T) {
	streams := map[string]streamtest.Stream{
		"end to end":   endToEndStream(),
		"full package": fullPackageStream(),
	}

	for name, stream := range streams {
		t.Run(name, func(t *testing.T) {
			body := stream.Data[stream.StringsLength:]
			for cut := 0; cut < len(body); cut++ {
				data := append([]byte{}, stream.Data[:int(stream.StringsLength)+cut]...)
				truncated := streamtest.Stream{Data: data, StringsLength: stream.StringsLength, StringsCount: stream.StringsCount}

				sink := &countingSink{}
				err := parse(t, &handler.Context{ContentHandler: sink}, truncated, handler.NewPackageHandler())
				require.Error(t, err, "cut at %d", cut)
				require.ErrorIs(t, err, errs.ErrStructural, "cut at %d", cut)
				require.Equal(t, 1, sink.errors, "cut at %d", cut)
			}
		})
	}
}

func TestParse_ExcessBytes(t *testing.T) {
	stream := streamtest.New().String(attribute.IDPackageName, "demo").End().Bytes(0xaa, 0xbb).Build()

	sink := &countingSink{}
	err := parse(t, &handler.Context{ContentHandler: sink}, stream, handler.NewPackageHandler())
	require.ErrorIs(t, err, errs.ErrExcessBytes)
	require.ErrorContains(t, err, "2 bytes")
	require.Equal(t, 1, sink.errors)
}

func TestParse_UnknownIDs(t *testing.T) {
	unknown := attribute.IDCount + 5

	build := func() streamtest.Stream {
		b := streamtest.New()
		b.Begin(unknown, attribute.StringValue("future"))
		b.UInt(unknown+1, 7)
		b.End()
		b.String(attribute.IDPackageName, "demo")
		b.End()

		return b.Build()
	}

	t.Run("rejected by same-version parser", func(t *testing.T) {
		ctx := &handler.Context{ContentHandler: &countingSink{}, IgnoreUnknownAttributes: true}
		err := parse(t, ctx, build(), handler.NewPackageHandler())
		require.ErrorIs(t, err, errs.ErrUnsupportedID)
	})

	t.Run("tolerated from newer minor version", func(t *testing.T) {
		sink := &countingSink{}
		ctx := &handler.Context{
			ContentHandler: sink,
			Policy:         attribute.VersionPolicy{StreamMinor: 1, ParserMinor: 0},
		}
		require.NoError(t, parse(t, ctx, build(), handler.NewPackageHandler()))
		require.Len(t, sink.Records, 1)
		require.Equal(t, "demo", sink.Info.Name)
	})
}

func TestParse_UnexpectedAttribute(t *testing.T) {
	build := func() streamtest.Stream {
		b := streamtest.New()
		b.Begin(attribute.IDFileType, attribute.UIntValue(1))
		b.String(attribute.IDFileUser, "x")
		b.End()
		b.String(attribute.IDPackageName, "demo")
		b.End()

		return b.Build()
	}

	err := parse(t, &handler.Context{ContentHandler: &countingSink{}}, build(), handler.NewPackageHandler())
	require.ErrorIs(t, err, errs.ErrUnexpectedAttribute)

	sink := &countingSink{}
	ctx := &handler.Context{ContentHandler: sink, IgnoreUnknownAttributes: true}
	require.NoError(t, parse(t, ctx, build(), handler.NewPackageHandler()))
	require.Equal(t, "demo", sink.Info.Name)
}

func TestParse_TagErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     uint64
		wantErr error
	}{
		{name: "type mismatch", raw: attribute.ComposeTag(attribute.IDPackageName, format.TypeUInt, format.EncodingInt8, false), wantErr: errs.ErrUnexpectedType},
		{name: "invalid type", raw: attribute.ComposeTag(attribute.IDPackageName, format.TypeInvalid, 0, false), wantErr: errs.ErrInvalidType},
		{name: "invalid encoding", raw: attribute.ComposeTag(attribute.IDPackageName, format.TypeString, 3, false), wantErr: errs.ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := streamtest.New().RawTag(tt.raw).Bytes(1, 0).End().Build()
			err := parse(t, &handler.Context{}, stream, handler.NewPackageHandler())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_MaxDepth(t *testing.T) {
	build := func() streamtest.Stream {
		b := streamtest.New()
		b.Begin(attribute.IDPackageUser, attribute.StringValue("a"))
		b.Begin(attribute.IDPackageUser, attribute.StringValue("b"))
		b.End()
		b.End()
		b.End()

		return b.Build()
	}

	root := newRecorder()
	err := parse(t, &handler.Context{MaxDepth: 1}, build(), root)
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
	require.True(t, errors.Is(err, errs.ErrUnsupported))
	require.Equal(t, []string{
		"attr root package:user=a",
		"attr root/a package:user=b",
		"delete root/a/b",
		"delete root/a",
	}, *root.log)

	require.NoError(t, parse(t, &handler.Context{MaxDepth: 2}, build(), newRecorder()))
	require.NoError(t, parse(t, &handler.Context{}, build(), newRecorder()))
}

func TestParse_DeepNestingIsIterative(t *testing.T) {
	const depth = 100_000

	b := streamtest.New()
	for range depth {
		b.Begin(attribute.IDPackageUser, attribute.StringValue("u"))
	}
	for range depth + 1 {
		b.End()
	}

	ctx := &handler.Context{IgnoreUnknownAttributes: true}
	require.NoError(t, parse(t, ctx, b.Build(), handler.NewIgnoreHandler()))
}

func TestParse_RootNotifiedOnce(t *testing.T) {
	root := handler.NewPackageHandler()
	require.NoError(t, parse(t, &handler.Context{}, streamtest.New().End().Build(), root))
	require.Equal(t, handler.StateDone, root.State())
}
