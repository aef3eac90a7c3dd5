package db

import (
	"fmt"
)

// DBConfigFromYamlObj converts the yaml representation of a DB config into
// the connection config the DB services expect.
func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	uri := fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	if yamlObj.Username == "" && yamlObj.Password == "" {
		uri = fmt.Sprintf(`mongodb%s://%s`, yamlObj.ConnectionPrefix, yamlObj.ConnectionStr)
	}

	return DBConfig{
		URI:             uri,
		Timeout:         yamlObj.Timeout,
		IdleConnTimeout: yamlObj.IdleConnTimeout,
		MaxPoolSize:     uint64(yamlObj.MaxPoolSize),
		NoCursorTimeout: yamlObj.UseNoCursorTimeout,
		DBNamePrefix:    yamlObj.DBNamePrefix,
	}
}
