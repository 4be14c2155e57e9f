package testutil

// OpenMWConfig is an openmw.cfg with plugins, archives and unrelated keys
// interleaved.
const OpenMWConfig = `data="/games/Morrowind/Data Files"
fallback-archive=Morrowind.bsa
fallback-archive=b.bsa
content=Morrowind.esm
content=c.esp
fallback-archive=a.bsa
content=f.omwgame
groundcover=grass.esp
content=g.omwscripts
content=e.omwaddon
encoding=win1252
`

// PluginsTxt is a plugins.txt with one disabled plugin and a comment.
const PluginsTxt = `# This file is used by the game to keep track of your downloaded content.
*Skyrim.esm
*Update.esm
Unofficial Patch.esp
*SkyUI.esp
`

// LoadOrderTxt is a file for the generic lines dialect.
const LoadOrderTxt = `alpha
# beta

gamma
`
