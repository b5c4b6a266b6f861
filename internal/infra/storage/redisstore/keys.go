package redisstore

import "strings"

// keyPrefix оборачивает префикс в hash tag: ключи одного хранилища должны
// попадать в один слот Redis Cluster, иначе Lua-скрипты падают с CROSSSLOT.
// Префикс, уже начинающийся с hash tag, используется как есть.
func keyPrefix(prefix string) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if strings.HasPrefix(prefix, "{") && strings.Index(prefix, "}") > 1 {
		return prefix
	}
	return "{" + prefix + "}"
}
