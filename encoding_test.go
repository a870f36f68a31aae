package fuzzypath

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

type document struct {
	Root  Path   `json:"root" yaml:"root" toml:"root" msgpack:"root"`
	Extra []Path `json:"extra" yaml:"extra" toml:"extra" msgpack:"extra"`
}

func TestJSON(t *testing.T) {
	out, err := json.Marshal(document{Root: New(`C:\Data\`), Extra: []Path{New("/")}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":"c:/data","extra":["/"]}`, string(out))

	var doc document
	require.NoError(t, json.Unmarshal([]byte(`{"root":"\\\\SRV\\Share//","extra":["A//B",""]}`), &doc))
	assert.Equal(t, New("/srv/share"), doc.Root)
	assert.Equal(t, []Path{New("a/b"), {}}, doc.Extra)
}

func TestJSONRejectsNonText(t *testing.T) {
	var doc document
	err := json.Unmarshal([]byte(`{"root":42}`), &doc)
	var typeErr *json.UnmarshalTypeError
	require.True(t, errors.As(err, &typeErr), "got %v", err)
}

func decodeTOML(in string, v interface{}) error {
	return toml.NewDecoder(bytes.NewReader([]byte(in))).EnableUnmarshalerInterface().Decode(v)
}

func TestTOML(t *testing.T) {
	out, err := toml.Marshal(document{Root: New(`E:\Video\`)})
	require.NoError(t, err)
	assert.Contains(t, string(out), "e:/video")

	var doc document
	require.NoError(t, decodeTOML("root = 'D:\\Music\\'\nextra = ['x//Y', \"A\\\\B\"]\n", &doc))
	assert.Equal(t, New("d:/music"), doc.Root)
	assert.Equal(t, []Path{New("x/y"), New("a/b")}, doc.Extra)
}

func TestTOMLRejectsNonText(t *testing.T) {
	for _, in := range []string{
		"root = 7\n",
		"root = true\n",
		"root = 1979-05-27\n",
		"root = 1.5\n",
		"extra = [1]\n",
	} {
		var doc document
		err := decodeTOML(in, &doc)
		assert.ErrorIs(t, err, ErrNotText, "input %q", in)
	}
}

func TestYAML(t *testing.T) {
	out, err := yaml.Marshal(document{Root: New("/Srv/")})
	require.NoError(t, err)
	assert.Contains(t, string(out), "root: /srv\n")

	var doc document
	require.NoError(t, yaml.Unmarshal([]byte("root: 'HOME\\\\User'\nextra: ['/', '2024']\n"), &doc))
	assert.Equal(t, New("home/user"), doc.Root)
	assert.Equal(t, []Path{New("/"), New("2024")}, doc.Extra)
}

func TestYAMLRejectsNonText(t *testing.T) {
	for _, in := range []string{"root: 2024\n", "root: [a, b]\n", "root: {a: b}\n", "root: true\n"} {
		var doc document
		err := yaml.Unmarshal([]byte(in), &doc)
		assert.ErrorIs(t, err, ErrNotText, "input %q", in)
	}
}

func TestMsgpack(t *testing.T) {
	out, err := msgpack.Marshal(document{Root: New(`\Tmp\`), Extra: []Path{New("A")}})
	require.NoError(t, err)

	var doc document
	require.NoError(t, msgpack.Unmarshal(out, &doc))
	assert.Equal(t, New("/tmp"), doc.Root)
	assert.Equal(t, []Path{New("a")}, doc.Extra)

	// Raw strings written by another producer are normalized on the way in.
	raw, err := msgpack.Marshal(map[string]interface{}{"root": `X\\Y\`, "extra": nil})
	require.NoError(t, err)
	doc = document{}
	require.NoError(t, msgpack.Unmarshal(raw, &doc))
	assert.Equal(t, New("x/y"), doc.Root)
}

func TestMsgpackRejectsNonText(t *testing.T) {
	raw, err := msgpack.Marshal(map[string]interface{}{"root": 12})
	require.NoError(t, err)

	var doc document
	err = msgpack.Unmarshal(raw, &doc)
	assert.ErrorIs(t, err, ErrNotText)
}

func TestMsgpackNil(t *testing.T) {
	raw, err := msgpack.Marshal(nil)
	require.NoError(t, err)

	p := New("x")
	require.NoError(t, msgpack.Unmarshal(raw, &p))
	assert.True(t, p.IsEmpty())
}

func TestSQL(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE paths (id INTEGER PRIMARY KEY, path TEXT, other)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO paths (id, path, other) VALUES (1, ?, NULL)`, New(`C:\Windows\`))
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO paths (id, path, other) VALUES (2, ?, 5)`, `RAW\\Input//`)
	require.NoError(t, err)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT path FROM paths WHERE id = 1`).Scan(&stored))
	assert.Equal(t, "c:/windows", stored)

	var p, other Path
	require.NoError(t, db.QueryRow(`SELECT path, other FROM paths WHERE id = 1`).Scan(&p, &other))
	assert.Equal(t, New("c:/windows"), p)
	assert.True(t, other.IsEmpty())

	require.NoError(t, db.QueryRow(`SELECT path FROM paths WHERE id = 2`).Scan(&p))
	assert.Equal(t, New("raw/input"), p)

	err = db.QueryRow(`SELECT other FROM paths WHERE id = 2`).Scan(&p)
	assert.ErrorIs(t, err, ErrNotText)
}

func TestScanBytes(t *testing.T) {
	var p Path
	require.NoError(t, p.Scan([]byte(`A\B`)))
	assert.Equal(t, New("a/b"), p)
	assert.ErrorIs(t, p.Scan(3.5), ErrNotText)
}
