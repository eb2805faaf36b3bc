package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

type deadliner interface {
	SetDeadline(t time.Time) error
}

// Dialer opens bridge sessions. Timeout bounds every call that carries no
// context deadline of its own.
type Dialer struct {
	Timeout time.Duration
	Logger  *logger.Logger
}

// Open performs the hello exchange over ch and returns the session.
func (d Dialer) Open(ctx context.Context, ch io.ReadWriteCloser) (dlp.Session, error) {
	c := NewClient(ch, d.Timeout, d.Logger)
	var hello params
	if err := c.call(ctx, methodHello, params{Version: ProtocolVersion}, &hello); err != nil {
		return nil, fmt.Errorf("bridge hello: %w", err)
	}
	if hello.Version != ProtocolVersion {
		return nil, fmt.Errorf("%w: helper speaks protocol %d", dlp.ErrIO, hello.Version)
	}
	return c, nil
}

// Client is a dlp.Session backed by a protocol helper.
type Client struct {
	mu      sync.Mutex
	ch      io.ReadWriteCloser
	enc     *json.Encoder
	dec     *json.Decoder
	seq     uint64
	timeout time.Duration
	logger  *logger.Logger
	closed  bool
}

// NewClient wraps ch without performing the hello exchange.
func NewClient(ch io.ReadWriteCloser, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		ch:      ch,
		enc:     json.NewEncoder(ch),
		dec:     json.NewDecoder(bufio.NewReader(ch)),
		timeout: timeout,
		logger:  log,
	}
}

func (c *Client) call(ctx context.Context, method string, p params, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return dlp.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if d, ok := c.ch.(deadliner); ok {
		deadline, has := ctx.Deadline()
		if !has && c.timeout > 0 {
			deadline = time.Now().Add(c.timeout)
		}
		_ = d.SetDeadline(deadline)
	}

	c.seq++
	if err := c.enc.Encode(request{ID: c.seq, Method: method, Params: p}); err != nil {
		return fmt.Errorf("%w: send %s: %w", dlp.ErrIO, method, err)
	}

	var resp response
	if err := c.dec.Decode(&resp); err != nil {
		return fmt.Errorf("%w: receive %s: %w", dlp.ErrIO, method, err)
	}
	if resp.ID != c.seq {
		return fmt.Errorf("%w: %s: response id %d, want %d", dlp.ErrIO, method, resp.ID, c.seq)
	}
	if resp.Error != nil {
		return decodeError(resp.Error)
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("%w: decode %s result: %w", dlp.ErrIO, method, err)
		}
	}
	return nil
}

func (c *Client) ReadUserInfo(ctx context.Context) (models.UserInfo, error) {
	var info models.UserInfo
	err := c.call(ctx, methodReadUserInfo, params{}, &info)
	return info, err
}

func (c *Client) WriteUserInfo(ctx context.Context, info models.UserInfo) error {
	return c.call(ctx, methodWriteUserInfo, params{User: &info}, nil)
}

func (c *Client) ReadSysInfo(ctx context.Context) (models.SysInfo, error) {
	var info models.SysInfo
	err := c.call(ctx, methodReadSysInfo, params{}, &info)
	return info, err
}

func (c *Client) ReadDBList(ctx context.Context, start int) ([]models.DBInfo, error) {
	var list []models.DBInfo
	err := c.call(ctx, methodReadDBList, params{Start: start}, &list)
	return list, err
}

func (c *Client) OpenConduit(ctx context.Context) error {
	return c.call(ctx, methodOpenConduit, params{}, nil)
}

func (c *Client) OpenDB(ctx context.Context, name string, mode dlp.OpenMode) (dlp.Database, error) {
	var res dbResult
	if err := c.call(ctx, methodOpenDB, params{Name: name, Mode: mode}, &res); err != nil {
		return nil, err
	}
	return &remoteDB{c: c, handle: res.DB, name: res.Name}, nil
}

func (c *Client) CreateDB(ctx context.Context, info models.DBInfo) (dlp.Database, error) {
	var res dbResult
	if err := c.call(ctx, methodCreateDB, params{Info: &info}, &res); err != nil {
		return nil, err
	}
	return &remoteDB{c: c, handle: res.DB, name: res.Name}, nil
}

func (c *Client) DeleteDB(ctx context.Context, name string) error {
	return c.call(ctx, methodDeleteDB, params{Name: name}, nil)
}

func (c *Client) AddSyncLogEntry(ctx context.Context, entry string) error {
	return c.call(ctx, methodAddSyncLog, params{Entry: entry}, nil)
}

func (c *Client) EndOfSync(ctx context.Context, status dlp.EndStatus) error {
	return c.call(ctx, methodEndOfSync, params{Status: status}, nil)
}

// Close tells the helper to hang up and closes the channel. It is safe to
// call more than once.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := c.call(ctx, methodClose, params{}, nil)
	if errors.Is(err, dlp.ErrClosed) {
		return nil
	}
	if err != nil {
		c.logger.Debug().Err(err).Str("func", "Client.Close").Msg("helper did not acknowledge close")
	}

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return c.ch.Close()
}

type remoteDB struct {
	c      *Client
	handle int
	name   string
}

func (d *remoteDB) Name() string { return d.name }

func (d *remoteDB) RecordCount(ctx context.Context) (int, error) {
	var res countResult
	err := d.c.call(ctx, methodRecordCount, params{DB: d.handle}, &res)
	return res.Count, err
}

func (d *remoteDB) readRecord(ctx context.Context, method string, p params) (*models.Record, error) {
	p.DB = d.handle
	var rec models.Record
	if err := d.c.call(ctx, method, p, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (d *remoteDB) ReadRecordByID(ctx context.Context, id uint32) (*models.Record, error) {
	return d.readRecord(ctx, methodReadByID, params{ID: id})
}

func (d *remoteDB) ReadRecordByIndex(ctx context.Context, index int) (*models.Record, error) {
	return d.readRecord(ctx, methodReadByIndex, params{Index: index})
}

func (d *remoteDB) ReadNextModified(ctx context.Context) (*models.Record, error) {
	return d.readRecord(ctx, methodReadNextModified, params{})
}

func (d *remoteDB) WriteRecord(ctx context.Context, rec models.Record) (uint32, error) {
	var res idResult
	err := d.c.call(ctx, methodWriteRecord, params{DB: d.handle, Record: &rec}, &res)
	return res.ID, err
}

func (d *remoteDB) DeleteRecord(ctx context.Context, id uint32) error {
	return d.c.call(ctx, methodDeleteRecord, params{DB: d.handle, ID: id}, nil)
}

func (d *remoteDB) DeleteAllRecords(ctx context.Context) error {
	return d.c.call(ctx, methodDeleteAll, params{DB: d.handle}, nil)
}

func (d *remoteDB) ResetSyncFlags(ctx context.Context) error {
	return d.c.call(ctx, methodResetFlags, params{DB: d.handle}, nil)
}

func (d *remoteDB) CleanUpDatabase(ctx context.Context) error {
	return d.c.call(ctx, methodCleanUp, params{DB: d.handle}, nil)
}

func (d *remoteDB) ReadAppBlock(ctx context.Context) ([]byte, error) {
	var res params
	err := d.c.call(ctx, methodReadAppBlock, params{DB: d.handle}, &res)
	return res.Data, err
}

func (d *remoteDB) WriteAppBlock(ctx context.Context, data []byte) error {
	return d.c.call(ctx, methodWriteAppBlock, params{DB: d.handle, Data: data}, nil)
}

func (d *remoteDB) ReadResourceByIndex(ctx context.Context, index int) (models.Resource, error) {
	var res models.Resource
	err := d.c.call(ctx, methodReadResource, params{DB: d.handle, Index: index}, &res)
	return res, err
}

func (d *remoteDB) WriteResource(ctx context.Context, res models.Resource) error {
	return d.c.call(ctx, methodWriteResource, params{DB: d.handle, Resource: &res}, nil)
}

func (d *remoteDB) Close(ctx context.Context) error {
	return d.c.call(ctx, methodCloseDB, params{DB: d.handle}, nil)
}
