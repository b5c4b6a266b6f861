package redisstore

import "github.com/redis/go-redis/v9"

// insertScript вставляет бронирование, если ключа еще нет.
// При непустом ARGV[9] сначала проверяет вместимость окна [ARGV[7], ARGV[8]).
//
// KEYS: booking hash, slots zset, created zset, scanned zset
// ARGV: id, fields, slot_ms, status, created_ms, scanned_ms, window_start_ms, window_end_ms, max
// Результат: 1 - вставлено, 0 - ID занят, -1 - слот заполнен
var insertScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
if ARGV[9] ~= '' then
	local count = redis.call('ZCOUNT', KEYS[2], ARGV[7], '(' .. ARGV[8])
	if count >= tonumber(ARGV[9]) then
		return -1
	end
end
redis.call('HSET', KEYS[1],
	'fields', ARGV[2],
	'slot_time', ARGV[3],
	'status', ARGV[4],
	'created_at', ARGV[5],
	'scanned_at', ARGV[6])
redis.call('ZADD', KEYS[3], ARGV[5], ARGV[1])
if ARGV[3] ~= '' then
	redis.call('ZADD', KEYS[2], ARGV[3], ARGV[1])
end
if ARGV[6] ~= '' then
	redis.call('ZADD', KEYS[4], ARGV[6], ARGV[1])
end
return 1
`)

// markScannedScript переводит бронирование active -> scanned.
//
// KEYS: booking hash, scanned zset
// ARGV: id, scanned_ms
// Результат: 1 - переведено, 0 - статус не active, -1 - не найдено
var markScannedScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
	return -1
end
if status ~= 'active' then
	return 0
end
redis.call('HSET', KEYS[1], 'status', 'scanned', 'scanned_at', ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[2], ARGV[1])
return 1
`)
