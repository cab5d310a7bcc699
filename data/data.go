package data

import (
    "embed"
    "io/fs"
    "path"
    "sort"
    "strings"
)

//go:embed scripts/*
var scriptsFS embed.FS

func OpenScript(name string) (fs.File, error) {
    return scriptsFS.Open("scripts/" + name)
}

func ReadScript(name string) (string, error) {
    data, err := scriptsFS.ReadFile("scripts/" + name)
    if err != nil {
        return "", err
    }
    return string(data), nil
}

/* names of the bundled lua scripts, without the .lua suffix */
func ScriptNames() []string {
    entries, err := scriptsFS.ReadDir("scripts")
    if err != nil {
        return nil
    }

    var out []string
    for _, entry := range entries {
        if path.Ext(entry.Name()) == ".lua" {
            out = append(out, strings.TrimSuffix(entry.Name(), ".lua"))
        }
    }

    sort.Strings(out)
    return out
}
