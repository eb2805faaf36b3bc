package store

// Placeholders must appear in ascending order: sqlite numbers $N parameters
// by first appearance.
const (
	pilotColumns = `id, name, user_name, user_login, password, creation, rom_version, base_dir, charset, number, sync_pc_id, last_sync_at`

	listPilots = `SELECT ` + pilotColumns + ` FROM pilots ORDER BY number, name;`

	getPilot = `SELECT ` + pilotColumns + ` FROM pilots WHERE id = $1;`

	getPilotByName = `SELECT ` + pilotColumns + ` FROM pilots WHERE name = $1;`

	findPilotsByFingerprint = `SELECT ` + pilotColumns + ` FROM pilots
		WHERE creation = $1 AND rom_version = $2
		ORDER BY number, name;`

	savePilot = `INSERT INTO pilots (` + pilotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			user_name = excluded.user_name,
			user_login = excluded.user_login,
			password = excluded.password,
			creation = excluded.creation,
			rom_version = excluded.rom_version,
			base_dir = excluded.base_dir,
			charset = excluded.charset,
			number = excluded.number,
			sync_pc_id = excluded.sync_pc_id,
			last_sync_at = excluded.last_sync_at;`

	deletePilot = `DELETE FROM pilots WHERE id = $1;`

	setPilotSyncStamp = `UPDATE pilots SET sync_pc_id = $1, last_sync_at = $2 WHERE id = $3;`

	deviceColumns = `name, kind, port, host, net_port, speed, timeout_ms, position`

	listDevices = `SELECT ` + deviceColumns + ` FROM devices ORDER BY position, name;`

	saveDevice = `INSERT INTO devices (` + deviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			kind = excluded.kind,
			port = excluded.port,
			host = excluded.host,
			net_port = excluded.net_port,
			speed = excluded.speed,
			timeout_ms = excluded.timeout_ms,
			position = excluded.position;`

	deleteDevice = `DELETE FROM devices WHERE name = $1;`

	requestColumns = `handle, bucket, seq, type, cradle, client_id, timeout_ms, expires_at, created_at, params`

	ensureRequestBucket = `INSERT INTO request_buckets (bucket, count, next_seq)
		VALUES ($1, 0, 1)
		ON CONFLICT (bucket) DO NOTHING;`

	allocateRequestSeq = `UPDATE request_buckets
		SET count = count + 1, next_seq = next_seq + 1
		WHERE bucket = $1
		RETURNING next_seq - 1;`

	insertRequest = `INSERT INTO requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	getRequest = `SELECT ` + requestColumns + ` FROM requests WHERE handle = $1;`

	deleteRequest = `DELETE FROM requests WHERE handle = $1;`

	decrementRequestBucket = `UPDATE request_buckets SET count = count - 1 WHERE bucket = $1 AND count > 0;`

	listExpiredRequests = `SELECT handle FROM requests
		WHERE expires_at IS NOT NULL AND expires_at <= $1
		ORDER BY bucket, seq;`

	getRequestBucket = `SELECT bucket, count, next_seq FROM request_buckets WHERE bucket = $1;`

	conduitConfigColumns = `pilot_id, conduit, enabled, sync_type, first_sync_type, first_slow, settings`

	getConduitConfig = `SELECT ` + conduitConfigColumns + ` FROM conduit_configs WHERE pilot_id = $1 AND conduit = $2;`

	listConduitConfigs = `SELECT ` + conduitConfigColumns + ` FROM conduit_configs WHERE pilot_id = $1 ORDER BY conduit;`

	saveConduitConfig = `INSERT INTO conduit_configs (` + conduitConfigColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (pilot_id, conduit) DO UPDATE SET
			enabled = excluded.enabled,
			sync_type = excluded.sync_type,
			first_sync_type = excluded.first_sync_type,
			first_slow = excluded.first_slow,
			settings = excluded.settings;`

	clearConduitFirstSync = `UPDATE conduit_configs
		SET first_sync_type = 'not_set', first_slow = FALSE
		WHERE pilot_id = $1 AND conduit = $2;`

	databaseCacheColumns = `pilot_id, name, type, creator, flags, version, mod_num, created_at, modified_at, backup_at, position`

	deleteDatabaseCache = `DELETE FROM database_cache WHERE pilot_id = $1;`

	insertDatabaseCache = `INSERT INTO database_cache (` + databaseCacheColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	listDatabaseCache = `SELECT ` + databaseCacheColumns + ` FROM database_cache WHERE pilot_id = $1 ORDER BY position, name;`

	markDatabaseBackedUp = `UPDATE database_cache SET backup_at = $1 WHERE pilot_id = $2 AND name = $3;`

	desktopRecordColumns = `local_id, remote_id, category, payload, attr, secret, archived`

	listDesktopRecords = `SELECT ` + desktopRecordColumns + ` FROM desktop_records
		WHERE pilot_id = $1 AND db_name = $2
		ORDER BY local_id;`

	getDesktopRecordByLocalID = `SELECT ` + desktopRecordColumns + ` FROM desktop_records WHERE local_id = $1;`

	getDesktopRecordByRemoteID = `SELECT ` + desktopRecordColumns + ` FROM desktop_records
		WHERE pilot_id = $1 AND db_name = $2 AND remote_id = $3
		ORDER BY local_id LIMIT 1;`

	insertDesktopRecord = `INSERT INTO desktop_records (pilot_id, db_name, remote_id, category, payload, attr, secret, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING local_id;`

	updateDesktopRecord = `UPDATE desktop_records
		SET remote_id = $1, category = $2, payload = $3, attr = $4, secret = $5, archived = $6
		WHERE local_id = $7;`

	deleteDesktopRecord = `DELETE FROM desktop_records WHERE local_id = $1;`

	deleteAllDesktopRecords = `DELETE FROM desktop_records WHERE pilot_id = $1 AND db_name = $2;`

	countMappedDesktopRecords = `SELECT COUNT(*) FROM desktop_records
		WHERE pilot_id = $1 AND db_name = $2 AND remote_id <> 0;`
)
