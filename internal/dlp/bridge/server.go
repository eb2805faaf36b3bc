package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/logger"
)

var errUnknownMethod = errors.New("unknown method")

// Serve answers frames read from ch with calls on sess until the client
// sends close, ch reaches EOF or ctx is cancelled.
func Serve(ctx context.Context, ch io.ReadWriter, sess dlp.Session, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	s := &server{sess: sess, dbs: make(map[int]dlp.Database), logger: log}

	dec := json.NewDecoder(bufio.NewReader(ch))
	enc := json.NewEncoder(ch)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		}

		result, err := s.dispatch(ctx, req)
		resp := response{ID: req.ID}
		if err != nil {
			resp.Error = encodeError(err)
		} else if result != nil {
			raw, mErr := json.Marshal(result)
			if mErr != nil {
				resp.Error = encodeError(mErr)
			} else {
				resp.Result = raw
			}
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		if req.Method == methodClose {
			return nil
		}
	}
}

type server struct {
	sess   dlp.Session
	dbs    map[int]dlp.Database
	next   int
	logger *logger.Logger
}

func (s *server) db(h int) (dlp.Database, error) {
	db, ok := s.dbs[h]
	if !ok {
		return nil, fmt.Errorf("%w: database handle %d", dlp.ErrNotFound, h)
	}
	return db, nil
}

func (s *server) register(db dlp.Database) dbResult {
	s.next++
	s.dbs[s.next] = db
	return dbResult{DB: s.next, Name: db.Name()}
}

func (s *server) dispatch(ctx context.Context, req request) (any, error) {
	p := req.Params
	s.logger.Debug().Str("func", "server.dispatch").Str("method", req.Method).Msg("bridge call")

	switch req.Method {
	case methodHello:
		return params{Version: ProtocolVersion}, nil
	case methodReadUserInfo:
		return s.sess.ReadUserInfo(ctx)
	case methodWriteUserInfo:
		if p.User == nil {
			return nil, fmt.Errorf("%s: user is required", req.Method)
		}
		return nil, s.sess.WriteUserInfo(ctx, *p.User)
	case methodReadSysInfo:
		return s.sess.ReadSysInfo(ctx)
	case methodReadDBList:
		return s.sess.ReadDBList(ctx, p.Start)
	case methodOpenConduit:
		return nil, s.sess.OpenConduit(ctx)
	case methodOpenDB:
		db, err := s.sess.OpenDB(ctx, p.Name, p.Mode)
		if err != nil {
			return nil, err
		}
		return s.register(db), nil
	case methodCreateDB:
		if p.Info == nil {
			return nil, fmt.Errorf("%s: info is required", req.Method)
		}
		db, err := s.sess.CreateDB(ctx, *p.Info)
		if err != nil {
			return nil, err
		}
		return s.register(db), nil
	case methodDeleteDB:
		return nil, s.sess.DeleteDB(ctx, p.Name)
	case methodAddSyncLog:
		return nil, s.sess.AddSyncLogEntry(ctx, p.Entry)
	case methodEndOfSync:
		return nil, s.sess.EndOfSync(ctx, p.Status)
	case methodClose:
		for h, db := range s.dbs {
			_ = db.Close(ctx)
			delete(s.dbs, h)
		}
		return nil, s.sess.Close()
	}

	db, err := s.db(p.DB)
	if err != nil {
		return nil, err
	}

	switch req.Method {
	case methodRecordCount:
		n, err := db.RecordCount(ctx)
		return countResult{Count: n}, err
	case methodReadByID:
		return db.ReadRecordByID(ctx, p.ID)
	case methodReadByIndex:
		return db.ReadRecordByIndex(ctx, p.Index)
	case methodReadNextModified:
		return db.ReadNextModified(ctx)
	case methodWriteRecord:
		if p.Record == nil {
			return nil, fmt.Errorf("%s: record is required", req.Method)
		}
		id, err := db.WriteRecord(ctx, *p.Record)
		return idResult{ID: id}, err
	case methodDeleteRecord:
		return nil, db.DeleteRecord(ctx, p.ID)
	case methodDeleteAll:
		return nil, db.DeleteAllRecords(ctx)
	case methodResetFlags:
		return nil, db.ResetSyncFlags(ctx)
	case methodCleanUp:
		return nil, db.CleanUpDatabase(ctx)
	case methodReadAppBlock:
		data, err := db.ReadAppBlock(ctx)
		return params{Data: data}, err
	case methodWriteAppBlock:
		return nil, db.WriteAppBlock(ctx, p.Data)
	case methodReadResource:
		return db.ReadResourceByIndex(ctx, p.Index)
	case methodWriteResource:
		if p.Resource == nil {
			return nil, fmt.Errorf("%s: resource is required", req.Method)
		}
		return nil, db.WriteResource(ctx, *p.Resource)
	case methodCloseDB:
		delete(s.dbs, p.DB)
		return nil, db.Close(ctx)
	}

	return nil, fmt.Errorf("%w: %s", errUnknownMethod, req.Method)
}
