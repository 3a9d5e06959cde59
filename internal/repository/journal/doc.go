// Package journal implements persistence for the campaign time state.
//
// The FileRepository stores the Snapshot as flat text: a schema version
// header followed by one tagged line per record (time, event, alarm,
// note). It exposes a Repository interface that the tracker service
// depends on.
package journal
