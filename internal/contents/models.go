package contents

import publiccontents "github.com/goliatone/go-lessons/contents"

type (
	Content = publiccontents.Content
	Kind    = publiccontents.Kind
)

const (
	KindReading = publiccontents.KindReading
	KindVideo   = publiccontents.KindVideo
	KindImage   = publiccontents.KindImage
)
