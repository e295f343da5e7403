package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<html><head><title> Report (no 12) </title></head>
<body>
<table>
<tr><td class="name"><a href="f1.html">First</a></td><td>1</td></tr>
<tr><td class="name"><a href="f2.html">Second</a></td><td>2</td></tr>
</table>
</body></html>`

func TestQueries(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)

	assert.Equal(t, "Report (no 12)", Title(doc))

	rows := FindAll(doc, "tr")
	assert.Len(t, rows, 2)

	cells := Children(rows[1], "td")
	require.Len(t, cells, 2)
	assert.Equal(t, "Second", Text(cells[0]))
	assert.Equal(t, "2", Text(cells[1]))

	link := Find(cells[0], "a")
	require.NotNil(t, link)
	assert.Equal(t, "f2.html", Attr(link, "href"))
	assert.Equal(t, "", Attr(link, "missing"))
}

func TestQueriesOnNil(t *testing.T) {
	assert.Nil(t, Find(nil, "a"))
	assert.Empty(t, FindAll(nil, "a"))
	assert.Empty(t, Children(nil, "a"))
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "", Attr(nil, "href"))
}
