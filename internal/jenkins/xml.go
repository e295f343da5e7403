package jenkins

import (
	"encoding/xml"
	"strings"

	"golang.org/x/net/html/charset"
)

// decodeXML unmarshals an api/xml document, accepting any encoding declared
// in the XML header.
func decodeXML(body string, v interface{}) error {
	decoder := xml.NewDecoder(strings.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel
	return decoder.Decode(v)
}

// rootElement returns the local name of the first element of body. ok is
// false when body does not start as a well formed XML document.
func rootElement(body string) (name string, ok bool) {
	decoder := xml.NewDecoder(strings.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		token, err := decoder.Token()
		if err != nil {
			return "", false
		}
		if start, isStart := token.(xml.StartElement); isStart {
			if err := decoder.Skip(); err != nil {
				return "", false
			}
			return start.Name.Local, true
		}
	}
}
