package rawwave

import (
	"github.com/go-audio/riff"
)

var (
	// CIDInfo is the list type of an INFO LIST chunk.
	CIDInfo = [4]byte{'I', 'N', 'F', 'O'}

	// See http://bwfmetaedit.sourceforge.net/listinfo.html
	markerIART    = [4]byte{'I', 'A', 'R', 'T'}
	markerISFT    = [4]byte{'I', 'S', 'F', 'T'}
	markerICRD    = [4]byte{'I', 'C', 'R', 'D'}
	markerICOP    = [4]byte{'I', 'C', 'O', 'P'}
	markerIARL    = [4]byte{'I', 'A', 'R', 'L'}
	markerINAM    = [4]byte{'I', 'N', 'A', 'M'}
	markerIENG    = [4]byte{'I', 'E', 'N', 'G'}
	markerIGNR    = [4]byte{'I', 'G', 'N', 'R'}
	markerIPRD    = [4]byte{'I', 'P', 'R', 'D'}
	markerISRC    = [4]byte{'I', 'S', 'R', 'C'}
	markerISBJ    = [4]byte{'I', 'S', 'B', 'J'}
	markerICMT    = [4]byte{'I', 'C', 'M', 'T'}
	markerITRK    = [4]byte{'I', 'T', 'R', 'K'}
	markerITRKBug = [4]byte{'i', 't', 'r', 'k'}
	markerITCH    = [4]byte{'I', 'T', 'C', 'H'}
	markerIKEY    = [4]byte{'I', 'K', 'E', 'Y'}
	markerIMED    = [4]byte{'I', 'M', 'E', 'D'}
)

// Metadata holds the text tags of a LIST/INFO chunk.
type Metadata struct {
	Artist       string
	Comments     string
	Copyright    string
	CreationDate string
	Engineer     string
	Technician   string
	Genre        string
	Keywords     string
	Medium       string
	Title        string
	Product      string
	Subject      string
	Software     string
	Source       string
	Location     string
	TrackNbr     string

	// BroadcastExtension is set when the file has a bext chunk.
	BroadcastExtension *BroadcastExtension
	// SamplerInfo is set when the file has a smpl chunk.
	SamplerInfo *SamplerInfo
}

// ReadMetadata returns the INFO tags, broadcast extension and sampler info of
// a wave file held in memory. It returns nil metadata when the file carries
// none of them.
func ReadMetadata(data []byte) (*Metadata, error) {
	tree, err := ParseChunks(data)
	if err != nil {
		return nil, err
	}

	return MetadataFromTree(tree)
}

// MetadataFromTree collects the metadata chunks directly below the RIFF
// chunk. Tags of later INFO lists override earlier ones.
func MetadataFromTree(tree *ChunkTree) (*Metadata, error) {
	root, ok := tree.Lookup(riff.RiffID)
	if !ok {
		return nil, nil
	}

	var md *Metadata

	get := func() *Metadata {
		if md == nil {
			md = &Metadata{}
		}

		return md
	}

	children := tree.Children(root)
	for i := range children {
		chunk := &children[i]

		switch chunk.ID {
		case CIDList:
			if listType, ok := chunk.FormType(); !ok || listType != CIDInfo {
				continue
			}

			for _, entry := range tree.Children(chunk) {
				get().set(entry.ID, nullTermStr(entry.Data))
			}
		case CIDBext:
			get().BroadcastExtension = decodeBroadcastChunk(chunk.Data)
		case CIDSmpl:
			info, err := decodeSamplerChunk(chunk.Data)
			if err != nil {
				return nil, err
			}

			get().SamplerInfo = info
		}
	}

	return md, nil
}

func (m *Metadata) set(id [4]byte, value string) {
	switch id {
	case markerIARL:
		m.Location = value
	case markerIART:
		m.Artist = value
	case markerISFT:
		m.Software = value
	case markerICRD:
		m.CreationDate = value
	case markerICOP:
		m.Copyright = value
	case markerINAM:
		m.Title = value
	case markerIENG:
		m.Engineer = value
	case markerIGNR:
		m.Genre = value
	case markerIPRD:
		m.Product = value
	case markerISRC:
		m.Source = value
	case markerISBJ:
		m.Subject = value
	case markerICMT:
		m.Comments = value
	case markerITRK, markerITRKBug:
		m.TrackNbr = value
	case markerITCH:
		m.Technician = value
	case markerIKEY:
		m.Keywords = value
	case markerIMED:
		m.Medium = value
	}
}
