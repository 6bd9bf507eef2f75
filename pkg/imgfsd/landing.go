/*
Copyright 2026 The imgfs Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package imgfsd

// landingPageHTML is served for GET / and GET /index.html. The
// reference server ships this as a file on disk served through
// http_serve_file; no such asset survives in this rewrite's build, so
// it's inlined here instead of introduced as a new file dependency.
const landingPageHTML = `<!DOCTYPE html>
<html>
<head><title>imgFS</title></head>
<body>
<h1>imgFS</h1>
<p>List images: <a href="/imgfs/list">/imgfs/list</a></p>
<form action="/imgfs/insert" method="post" enctype="application/octet-stream">
  <label>name: <input type="text" name="name"></label>
  <input type="submit" value="insert">
</form>
</body>
</html>
`
